package holidayservice

// Holiday модель публичного праздника из внешнего фида
// Формат совместим с Nager.Date API v3
type Holiday struct {
	Date        string `json:"date"` // "2025-12-25"
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
