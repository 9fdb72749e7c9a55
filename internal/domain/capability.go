package domain

// Capability результат проверки возможности хранилища
type Capability int

const (
	CapabilityUnknown Capability = iota
	CapabilitySupported
	CapabilityUnsupported
)

// String возвращает имя состояния для логов
func (c Capability) String() string {
	switch c {
	case CapabilitySupported:
		return "supported"
	case CapabilityUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Enabled возвращает true только для подтвержденной поддержки
func (c Capability) Enabled() bool {
	return c == CapabilitySupported
}

// IsKnown возвращает true, если проверка дала определенный результат
func (c Capability) IsKnown() bool {
	return c != CapabilityUnknown
}
