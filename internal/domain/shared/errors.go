package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages carry the Turkish text shown to the user.
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Kayıt bulunamadı")
	ErrInvalidMoney = NewDomainError("INVALID_MONEY", "Geçersiz tutar")
	ErrInvalidPlan  = NewDomainError("INVALID_PLAN", "Geçersiz taksit planı")
	ErrSchema       = NewDomainError("SCHEMA_ERROR", "Veritabanı şeması hazırlanamadı")
	ErrConflict     = NewDomainError("CONFLICT", "Bu kayıt otomatik oluşturulmuştur ve doğrudan silinemez")
	ErrStore        = NewDomainError("STORE_ERROR", "Veritabanı işlemi başarısız oldu")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Geçersiz girdi")
)
