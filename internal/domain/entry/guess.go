package entry

import "strings"

var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	// Company closure first: its keywords contain the vacation keywords.
	{CategoryCompanyClosure, []string{"betriebsurlaub", "company closure", "closure"}},
	{CategorySickLeave, []string{"krankenstand", "krank", "sick"}},
	{CategoryVacation, []string{"urlaub", "vacation", "holiday leave"}},
	{CategoryPublicHoliday, []string{"feiertag", "public holiday"}},
	{CategoryTraining, []string{"fortbildung", "schulung", "training"}},
	{CategoryOffice, []string{"büro", "buero", "office"}},
}

// GuessCategory derives a category from a free-text description.
// An empty description is office work; anything unrecognized is an outdoor round.
func GuessCategory(description string) Category {
	d := strings.ToLower(strings.TrimSpace(description))
	if d == "" {
		return CategoryOffice
	}
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(d, kw) {
				return ck.category
			}
		}
	}
	return CategoryOutdoorRound
}
