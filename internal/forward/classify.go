package forward

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devilcove/piafwd"
)

// Classify turns the api response document into the text to display or
// a Failure. A port field wins, then an error field; anything else is
// an unknown response.
func Classify(document map[string]any) (string, error) {
	if port, ok := document["port"]; ok {
		return fmt.Sprintf("Forwarded port: %v", port), nil
	}
	if value, ok := document["error"]; ok {
		return "", piafwd.Fail(piafwd.APIReportedError, nil, "API returned an error: %v", value)
	}
	return "", piafwd.Fail(piafwd.UnrecognizedResponse, nil,
		"API returned unknown key/value pair(s):\n\n%s", describeDocument(document))
}

// describeDocument renders the document as key: value lines, sorted so
// the output is stable.
func describeDocument(document map[string]any) string {
	keys := make([]string, 0, len(document))
	for key := range document {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := []string{}
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %v", key, document[key]))
	}
	return strings.Join(pairs, "\n")
}
