package report

// Labels are the localized headings used in exports
type Labels struct {
	Title       string
	Summary     string
	Themes      string
	Insights    string
	Tasks       string
	Sentiment   string
	GeneratedBy string
}

var labels = map[string]Labels{
	"ru": {
		Title:       "Отчет Voxly",
		Summary:     "Исполнительное резюме",
		Themes:      "Основные темы",
		Insights:    "Ключевые инсайты",
		Tasks:       "План действий",
		Sentiment:   "Тональность",
		GeneratedBy: "Сгенерировано с помощью Voxly",
	},
	"en": {
		Title:       "Voxly Report",
		Summary:     "Executive summary",
		Themes:      "Main themes",
		Insights:    "Key insights",
		Tasks:       "Action plan",
		Sentiment:   "Sentiment",
		GeneratedBy: "Generated with Voxly",
	},
}

// LabelsFor returns the headings for locale, falling back to Russian
func LabelsFor(locale string) Labels {
	if l, ok := labels[locale]; ok {
		return l
	}
	return labels["ru"]
}
