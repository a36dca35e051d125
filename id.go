package pipeline

import "github.com/google/uuid"

// syntheticLabelPrefix marks labels this package generated itself, as
// opposed to ones an author wrote explicitly in script text. Kept short
// since labels appear in log output and error messages.
const syntheticLabelPrefix = "_L"

// newSyntheticLabel returns a unique label for a command whose author did
// not supply one explicitly. Grounded on google/uuid's role elsewhere in
// the example pack as the go-to generator for opaque unique tags.
func newSyntheticLabel() string {
	return syntheticLabelPrefix + uuid.NewString()
}
