package matchers

import (
	"encoding/json"
	"fmt"

	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
)

func parseJSONObject(actual any) (object map[string]any, err error) {
	data, ok := actual.([]byte)
	if !ok {
		err = fmt.Errorf("MatchJSONObject matcher actual value must be of type []byte. Got:\n%s", format.Object(actual, 1))
		return
	}
	err = json.Unmarshal(data, &object)
	if err != nil {
		err = fmt.Errorf("MatchJSONObject failed to parse JSON object from actual value: %w", err)
	}
	return
}

// MatchJSONObject matches a JSON document against either an OmegaMatcher
// applied to the decoded map, or any value serialized and compared with
// MatchJSON.
func MatchJSONObject(arg any) OmegaMatcher {
	if matcher, ok := arg.(OmegaMatcher); ok {
		return WithTransform(parseJSONObject, matcher)
	}

	var matcher OmegaMatcher
	switch match := arg.(type) {
	case string:
		matcher = MatchJSON(match)
	case []byte:
		matcher = MatchJSON(match)
	default:
		jsonString, err := json.Marshal(match)
		if err != nil {
			panic(fmt.Sprintf("MatchJSONObject expectation is not serializable: %s", err))
		}
		matcher = MatchJSON(jsonString)
	}
	toBytes := func(actual any) ([]byte, error) {
		switch a := actual.(type) {
		case []byte:
			return a, nil
		case string:
			return []byte(a), nil
		default:
			return json.Marshal(a)
		}
	}
	return WithTransform(toBytes, matcher)
}
