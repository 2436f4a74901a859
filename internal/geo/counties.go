// Package geo provides Romanian administrative reference data and a
// Nominatim-backed geocoding client.
package geo

import "strings"

// County is a Romanian judet with its two-letter code and county seat.
type County struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Seat       string   `json:"seat"`
	Localities []string `json:"localities,omitempty"`
}

// counties holds the full list, ordered alphabetically by name.
// Bucharest is included with code B as in official registries.
var counties = []County{
	{Code: "AB", Name: "Alba", Seat: "Alba Iulia", Localities: []string{"Alba Iulia", "Aiud", "Blaj", "Sebes", "Cugir"}},
	{Code: "AR", Name: "Arad", Seat: "Arad", Localities: []string{"Arad", "Ineu", "Lipova", "Pecica"}},
	{Code: "AG", Name: "Arges", Seat: "Pitesti", Localities: []string{"Pitesti", "Campulung", "Curtea de Arges", "Mioveni"}},
	{Code: "BC", Name: "Bacau", Seat: "Bacau", Localities: []string{"Bacau", "Onesti", "Moinesti", "Comanesti"}},
	{Code: "BH", Name: "Bihor", Seat: "Oradea", Localities: []string{"Oradea", "Salonta", "Beius", "Marghita"}},
	{Code: "BN", Name: "Bistrita-Nasaud", Seat: "Bistrita", Localities: []string{"Bistrita", "Nasaud", "Beclean"}},
	{Code: "BT", Name: "Botosani", Seat: "Botosani", Localities: []string{"Botosani", "Dorohoi", "Darabani"}},
	{Code: "BV", Name: "Brasov", Seat: "Brasov", Localities: []string{"Brasov", "Fagaras", "Sacele", "Codlea", "Rasnov"}},
	{Code: "BR", Name: "Braila", Seat: "Braila", Localities: []string{"Braila", "Ianca", "Insuratei"}},
	{Code: "B", Name: "Bucuresti", Seat: "Bucuresti", Localities: []string{"Sector 1", "Sector 2", "Sector 3", "Sector 4", "Sector 5", "Sector 6"}},
	{Code: "BZ", Name: "Buzau", Seat: "Buzau", Localities: []string{"Buzau", "Ramnicu Sarat", "Nehoiu"}},
	{Code: "CS", Name: "Caras-Severin", Seat: "Resita", Localities: []string{"Resita", "Caransebes", "Oravita"}},
	{Code: "CL", Name: "Calarasi", Seat: "Calarasi", Localities: []string{"Calarasi", "Oltenita", "Lehliu Gara"}},
	{Code: "CJ", Name: "Cluj", Seat: "Cluj-Napoca", Localities: []string{"Cluj-Napoca", "Turda", "Dej", "Campia Turzii", "Gherla", "Floresti"}},
	{Code: "CT", Name: "Constanta", Seat: "Constanta", Localities: []string{"Constanta", "Mangalia", "Medgidia", "Navodari", "Cernavoda"}},
	{Code: "CV", Name: "Covasna", Seat: "Sfantu Gheorghe", Localities: []string{"Sfantu Gheorghe", "Targu Secuiesc", "Covasna"}},
	{Code: "DB", Name: "Dambovita", Seat: "Targoviste", Localities: []string{"Targoviste", "Moreni", "Pucioasa", "Gaesti"}},
	{Code: "DJ", Name: "Dolj", Seat: "Craiova", Localities: []string{"Craiova", "Bailesti", "Calafat", "Filiasi"}},
	{Code: "GL", Name: "Galati", Seat: "Galati", Localities: []string{"Galati", "Tecuci", "Targu Bujor"}},
	{Code: "GR", Name: "Giurgiu", Seat: "Giurgiu", Localities: []string{"Giurgiu", "Bolintin-Vale", "Mihailesti"}},
	{Code: "GJ", Name: "Gorj", Seat: "Targu Jiu", Localities: []string{"Targu Jiu", "Motru", "Rovinari"}},
	{Code: "HR", Name: "Harghita", Seat: "Miercurea Ciuc", Localities: []string{"Miercurea Ciuc", "Odorheiu Secuiesc", "Gheorgheni", "Toplita"}},
	{Code: "HD", Name: "Hunedoara", Seat: "Deva", Localities: []string{"Deva", "Hunedoara", "Petrosani", "Orastie", "Brad"}},
	{Code: "IL", Name: "Ialomita", Seat: "Slobozia", Localities: []string{"Slobozia", "Fetesti", "Urziceni"}},
	{Code: "IS", Name: "Iasi", Seat: "Iasi", Localities: []string{"Iasi", "Pascani", "Targu Frumos", "Harlau"}},
	{Code: "IF", Name: "Ilfov", Seat: "Buftea", Localities: []string{"Buftea", "Voluntari", "Otopeni", "Popesti-Leordeni", "Bragadiru", "Chitila"}},
	{Code: "MM", Name: "Maramures", Seat: "Baia Mare", Localities: []string{"Baia Mare", "Sighetu Marmatiei", "Borsa", "Viseu de Sus"}},
	{Code: "MH", Name: "Mehedinti", Seat: "Drobeta-Turnu Severin", Localities: []string{"Drobeta-Turnu Severin", "Orsova", "Strehaia"}},
	{Code: "MS", Name: "Mures", Seat: "Targu Mures", Localities: []string{"Targu Mures", "Sighisoara", "Reghin", "Tarnaveni"}},
	{Code: "NT", Name: "Neamt", Seat: "Piatra Neamt", Localities: []string{"Piatra Neamt", "Roman", "Targu Neamt", "Bicaz"}},
	{Code: "OT", Name: "Olt", Seat: "Slatina", Localities: []string{"Slatina", "Caracal", "Bals", "Corabia"}},
	{Code: "PH", Name: "Prahova", Seat: "Ploiesti", Localities: []string{"Ploiesti", "Campina", "Sinaia", "Busteni", "Valenii de Munte"}},
	{Code: "SM", Name: "Satu Mare", Seat: "Satu Mare", Localities: []string{"Satu Mare", "Carei", "Negresti-Oas"}},
	{Code: "SJ", Name: "Salaj", Seat: "Zalau", Localities: []string{"Zalau", "Simleu Silvaniei", "Jibou"}},
	{Code: "SB", Name: "Sibiu", Seat: "Sibiu", Localities: []string{"Sibiu", "Medias", "Cisnadie", "Avrig"}},
	{Code: "SV", Name: "Suceava", Seat: "Suceava", Localities: []string{"Suceava", "Falticeni", "Radauti", "Campulung Moldovenesc", "Vatra Dornei"}},
	{Code: "TR", Name: "Teleorman", Seat: "Alexandria", Localities: []string{"Alexandria", "Rosiorii de Vede", "Turnu Magurele", "Zimnicea"}},
	{Code: "TM", Name: "Timis", Seat: "Timisoara", Localities: []string{"Timisoara", "Lugoj", "Sannicolau Mare", "Jimbolia", "Buzias"}},
	{Code: "TL", Name: "Tulcea", Seat: "Tulcea", Localities: []string{"Tulcea", "Macin", "Babadag", "Sulina"}},
	{Code: "VS", Name: "Vaslui", Seat: "Vaslui", Localities: []string{"Vaslui", "Barlad", "Husi", "Negresti"}},
	{Code: "VL", Name: "Valcea", Seat: "Ramnicu Valcea", Localities: []string{"Ramnicu Valcea", "Dragasani", "Horezu", "Calimanesti"}},
	{Code: "VN", Name: "Vrancea", Seat: "Focsani", Localities: []string{"Focsani", "Adjud", "Marasesti", "Panciu"}},
}

// Counties returns the full county list. The returned slice must not be
// mutated by callers.
func Counties() []County {
	return counties
}

// CountyByCode looks up a county by its two-letter code, case-insensitive.
func CountyByCode(code string) (County, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range counties {
		if c.Code == code {
			return c, true
		}
	}
	return County{}, false
}

// CountyByName looks up a county by name, case-insensitive.
func CountyByName(name string) (County, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range counties {
		if strings.ToLower(c.Name) == name {
			return c, true
		}
	}
	return County{}, false
}

// LocalitiesIn returns the known localities for a county code.
func LocalitiesIn(code string) []string {
	c, ok := CountyByCode(code)
	if !ok {
		return nil
	}
	return c.Localities
}

// NormalizeAddress assembles a free-text query for geocoding from the
// structured address parts, skipping empty components.
func NormalizeAddress(street, locality, countyName string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{street, locality, countyName} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, "Romania")
	return strings.Join(parts, ", ")
}
