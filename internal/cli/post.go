package cli

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	http "github.com/wesleyorama2/relay/http"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := settingsFromFlags(cmd)
		data, _ := cmd.Flags().GetString("data")
		asJSON, _ := cmd.Flags().GetBool("json")
		asForm, _ := cmd.Flags().GetBool("form")

		headers := parseHeaders(s.headers, nil)
		target := normalizeURL(args[0])

		var req *http.Request
		switch {
		case asJSON:
			var err error
			req, err = http.JSONRequest("POST", target, headers, jsonValue(data))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		case asForm:
			form, err := url.ParseQuery(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid form data: %v\n", err)
				os.Exit(1)
			}
			req = http.FormRequest("POST", target, headers, form)
		default:
			req = http.NewRequest(
				http.Options{Method: "POST", Headers: headers},
				target,
				http.BodyString(data),
			)
		}

		execute(s, req)
	},
}

// jsonValue passes already-valid JSON through untouched and quotes
// anything else as a JSON string.
func jsonValue(data string) any {
	trimmed := strings.TrimSpace(data)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") ||
		strings.HasPrefix(trimmed, `"`) {
		return rawJSON(trimmed)
	}
	return data
}

// rawJSON marshals as-is.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) {
	return []byte(r), nil
}

func init() {
	addRequestFlags(postCmd)
	postCmd.Flags().StringP("data", "d", "", "Request body data")
	postCmd.Flags().Bool("json", false, "Send the body as JSON (sets Content-Type)")
	postCmd.Flags().Bool("form", false, "Send the body as a url-encoded form (sets Content-Type)")
}
