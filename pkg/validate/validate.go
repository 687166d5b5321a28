package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida; validator/v10 cachea la metadata de structs,
// por lo que reutilizar la instancia es lo recomendado por la librería.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO según sus tags `validate:"..."`.
// Devuelve un error legible con la lista de campos inválidos.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("campos inválidos: %s", strings.Join(fields, ", "))
}
