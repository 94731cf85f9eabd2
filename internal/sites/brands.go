package sites

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// brandAliases maps normalized brand-name variants to the site that brand
// owns. Normalization (see normalizeBrand) lowercases, folds diacritics and
// strips spaces/hyphens/underscores, so "The Bear House", "the-bear-house"
// and "THE BEAR HOUSE" all hit the same entry.
var brandAliases = map[string]Key{
	"bewakoof": Bewakoof,

	// Sassafras and all its sub-brand families own sassafras.in.
	"sassafras":              Sassafras,
	"masclnsassafras":        Sassafras,
	"mascln":                 Sassafras,
	"masclnbysassafras":      Sassafras,
	"shaebysassafras":        Sassafras,
	"shae":                   Sassafras,
	"shaesassafras":          Sassafras,
	"pinkpaprikabysassafras": Sassafras,
	"pinkpaprika":            Sassafras,
	"pinkpaprikasassafras":   Sassafras,

	"indiangarageco":         IndianGarageCo,
	"indiangaragecompany":    IndianGarageCo,
	"theindiangaragecompany": IndianGarageCo,
	"theindiangaragecom":     IndianGarageCo,
	"theindiangarageco":      IndianGarageCo,
	"theindiangarage":        IndianGarageCo,
	"tigc":                   IndianGarageCo,

	"bearhouse":         BearHouse,
	"thebearhouse":      BearHouse,
	"bearhouseindia":    BearHouse,
	"thebearhouseindia": BearHouse,

	"bearcompany":    BearCompany,
	"thebearcompany": BearCompany,
	"bear":           BearCompany,
	"bearco":         BearCompany,

	"mydesignation": MyDesignation,
	"designation":   MyDesignation,

	"beeglee":      Beeglee,
	"colorcapital": ColorCapital,

	"chapter2":   ChapterTwo,
	"chaptertwo": ChapterTwo,

	"qissa":       Qissa,
	"mywishbag":   MyWishbag,
	"campussutra": CampusSutra,
	"hautesauce":  HauteSauce,
	"silisoul":    Silisoul,

	"gunsandsons": GunsAndSons,
	"gunssons":    GunsAndSons,
	"gunsnsons":   GunsAndSons,
}

// sassafrasKeywords catch sub-brand spellings the alias table misses; any
// brand containing one of these maps to the sassafras umbrella site.
var sassafrasKeywords = []string{"sassafras", "mascln", "shae", "paprika"}

// umbrellaQueryBrands are sub-brand family markers whose products search
// better under the canonical umbrella brand name.
var umbrellaQueryBrands = []string{"mascln", "shae", "pink paprika"}

// brandFolder strips combining marks after NFD decomposition, folding
// "Sassafrás" to "Sassafras" before the lowercase/collapse step.
var brandFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeBrand produces the canonical lookup form of a brand name.
func normalizeBrand(name string) string {
	folded, _, err := transform.String(brandFolder, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return replacer.Replace(folded)
}

// ResolveBrandSite returns the site a brand owns, if any. Unknown brands are
// not an error: such products are searched on the primary sites only.
func ResolveBrandSite(brandName string) (Key, bool) {
	normalized := normalizeBrand(brandName)

	if key, ok := brandAliases[normalized]; ok && Known(key) {
		return key, true
	}

	// Sub-brand fallback: anything sassafras-flavored belongs to sassafras.in.
	for _, kw := range sassafrasKeywords {
		if strings.Contains(normalized, kw) {
			return Sassafras, true
		}
	}

	return "", false
}

// SearchQueryBrand returns the brand term to use as the text query of a
// second search pass. Sub-brand family names are replaced by the umbrella
// brand, which the search provider indexes far better.
func SearchQueryBrand(brandName string) string {
	lower := strings.ToLower(brandName)
	for _, marker := range umbrellaQueryBrands {
		if strings.Contains(lower, marker) {
			return "SASSAFRAS"
		}
	}
	return brandName
}
