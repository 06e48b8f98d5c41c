package juno

import (
	"net/http"
	"sort"
	"strings"
)

// Header values replaced with a mask in debug output.
var redactedHeaders = map[string]bool{
	"Authorization":    true,
	"X-Resource-Token": true,
}

// curlCommand renders req as a shell command for debug logs. Every
// occurrence of a non-empty secret is masked, including inside the body.
func curlCommand(req *http.Request, body []byte, secrets ...string) string {
	var sb strings.Builder
	sb.WriteString("curl -X ")
	sb.WriteString(req.Method)

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range req.Header[k] {
			if redactedHeaders[k] {
				v = redact(v)
			}
			sb.WriteString(" -H ")
			sb.WriteString(shellQuote(k + ": " + v))
		}
	}

	if len(body) > 0 {
		sb.WriteString(" -d ")
		sb.WriteString(shellQuote(string(body)))
	}

	sb.WriteString(" ")
	sb.WriteString(shellQuote(req.URL.String()))

	out := sb.String()
	for _, secret := range secrets {
		if secret != "" {
			out = strings.ReplaceAll(out, secret, "***")
		}
	}
	return out
}

func redact(v string) string {
	scheme, _, ok := strings.Cut(v, " ")
	if !ok {
		return "***"
	}
	return scheme + " ***"
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
