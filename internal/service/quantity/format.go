package quantity

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// FormatUnits форматирует количество единиц с двумя знаками после запятой во французской локали
func FormatUnits(v float64) string {
	return printer.Sprint(number.Decimal(v, number.Scale(2)))
}
