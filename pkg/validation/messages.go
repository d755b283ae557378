package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Messages turns a validator error into client facing messages. Any other
// error yields nil.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if custom := CustomMessage(e.StructField()); custom != nil {
			if msg, ok := custom[e.Tag()]; ok {
				messages = append(messages, msg)
				continue
			}
		}
		messages = append(messages, DefaultMessage(e.Field(), e.Tag()))
	}
	return messages
}
