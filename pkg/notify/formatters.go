package notify

import (
	"encoding/json"
	"fmt"
	"time"
)

// TextFormatter renders notices as single text lines
type TextFormatter struct{}

func (TextFormatter) Format(n Notice) (string, error) {
	return fmt.Sprintf("[%s] %s: %s", n.SentAt.Format(time.RFC3339), n.Subject, n.Body), nil
}

// JSONFormatter renders notices as JSON objects
type JSONFormatter struct{}

func (JSONFormatter) Format(n Notice) (string, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
