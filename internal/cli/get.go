package cli

import (
	"strings"

	"github.com/spf13/cobra"

	http "github.com/wesleyorama2/relay/http"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := settingsFromFlags(cmd)

		req := http.NewRequest(
			http.Options{Method: "GET", Headers: parseHeaders(s.headers, nil)},
			normalizeURL(args[0]),
			http.EmptyBody(),
		)

		execute(s, req)
	},
}

// normalizeURL defaults a bare host to the http scheme so that
// "example.com/x" works the way curl users expect.
func normalizeURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return "http://" + raw
	}
	return raw
}

func init() {
	addRequestFlags(getCmd)
}
