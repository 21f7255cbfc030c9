package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the Proxy callback shared by the outbound HTTP
// transports (search API calls and source probes). Explicitly
// configured URLs win; with neither set, the standard environment
// variables (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		// http request with only an https proxy configured
		return http.ProxyFromEnvironment(req)
	}
}
