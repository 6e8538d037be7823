package approleassignment

import (
	"fmt"
	"strings"

	m365errors "github.com/praetorian-inc/m365/pkg/errors"
)

// Selector identifies the service principal whose assignments are listed.
// Exactly one field must be set.
type Selector struct {
	AppId       string
	ObjectId    string
	DisplayName string
}

func (s Selector) count() int {
	n := 0
	for _, v := range []string{s.AppId, s.ObjectId, s.DisplayName} {
		if v != "" {
			n++
		}
	}
	return n
}

// Filter returns the OData $filter expression matching the selector.
func (s Selector) Filter() (string, error) {
	if s.count() != 1 {
		return "", m365errors.NewValidationError("Specify either appId, objectId or displayName")
	}

	switch {
	case s.AppId != "":
		return fmt.Sprintf("appId eq '%s'", escapeLiteral(s.AppId)), nil
	case s.ObjectId != "":
		return fmt.Sprintf("id eq '%s'", escapeLiteral(s.ObjectId)), nil
	default:
		return fmt.Sprintf("displayName eq '%s'", escapeLiteral(s.DisplayName)), nil
	}
}

// escapeLiteral doubles single quotes as OData string literals require.
func escapeLiteral(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
