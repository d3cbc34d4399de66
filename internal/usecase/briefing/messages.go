package briefing

// Messages is the user-facing text catalog for one locale
type Messages struct {
	Transcribing string
	Analyzing    string
	Completed    string

	KeyMissing      string
	ProviderMissing string
	BadRequest      string
	Forbidden       string
	TooManyRequests string
	Unknown         string

	SummaryFallback   string
	SentimentFallback string
}

var catalog = map[string]Messages{
	"ru": {
		Transcribing:      "Расшифровываем аудиодорожку...",
		Analyzing:         "Глубокий нейросетевой анализ...",
		Completed:         "Готово!",
		KeyMissing:        "Не настроен API ключ (переменные окружения).",
		ProviderMissing:   "Не настроен сервис распознавания или анализа (TRANSCRIPTION_PROVIDER / ANALYSIS_PROVIDER).",
		BadRequest:        "Ошибка запроса (возможно, модель не поддерживает этот формат).",
		Forbidden:         "Ошибка доступа (проверьте API ключ и лимиты).",
		TooManyRequests:   "Слишком много запросов. Подождите немного и попробуйте снова.",
		Unknown:           "Произошла ошибка.",
		SummaryFallback:   "Резюме недоступно.",
		SentimentFallback: "Не определена",
	},
	"en": {
		Transcribing:      "Transcribing the audio track...",
		Analyzing:         "Running deep analysis...",
		Completed:         "Done!",
		KeyMissing:        "API key is not configured (environment variables).",
		ProviderMissing:   "No transcription or analysis provider is configured (TRANSCRIPTION_PROVIDER / ANALYSIS_PROVIDER).",
		BadRequest:        "Request error (the model may not support this format).",
		Forbidden:         "Access denied (check the API key and quota).",
		TooManyRequests:   "Too many requests. Please wait a moment and try again.",
		Unknown:           "An error occurred.",
		SummaryFallback:   "Summary is not available.",
		SentimentFallback: "Not determined",
	},
}

// MessagesFor returns the catalog for locale, falling back to Russian
func MessagesFor(locale string) Messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog["ru"]
}
