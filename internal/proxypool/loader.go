package proxypool

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var headerKeywords = []string{"address", "port", "username", "password"}

// Load builds a Manager from a whitespace-delimited proxy list file:
//
//	Address Port [Username] [Password]
//
// An optional header row is auto-detected by keyword. Blank lines and lines
// starting with # are ignored. Lines that fail to parse are logged and
// skipped rather than aborting the load.
func Load(path string, opts Options) (*Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open proxy list: %w", err)
	}
	defer f.Close()

	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	var proxies []*Proxy
	scanner := bufio.NewScanner(f)
	lineNum := 0
	sawContent := false
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// The optional header row may sit below leading comments.
		if !sawContent {
			sawContent = true
			if isHeaderLine(line) {
				continue
			}
		}

		proxy, err := parseProxyLine(line)
		if err != nil {
			logger.Warnf("skipping invalid proxy line %d: %s - %v", lineNum, line, err)
			continue
		}
		proxies = append(proxies, proxy)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read proxy list %s: %w", path, err)
	}

	logger.Infof("loaded %d proxies from %s", len(proxies), path)
	return New(proxies, opts)
}

// FromURLs builds a Manager from proxy URLs of the form
// scheme://[user:pass@]host:port for http, https and socks5 schemes.
// Malformed entries are logged and skipped.
func FromURLs(urls []string, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	var proxies []*Proxy
	for _, raw := range urls {
		proxy, err := parseProxyURL(raw)
		if err != nil {
			logger.Warnf("skipping invalid proxy URL %s: %v", raw, err)
			continue
		}
		proxies = append(proxies, proxy)
	}

	logger.Infof("loaded %d proxies from URL list", len(proxies))
	return New(proxies, opts)
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range headerKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func parseProxyLine(line string) (*Proxy, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("expected at least address and port, got %d fields", len(parts))
	}

	address := parts[0]
	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("port %q is not an integer", parts[1])
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port %d out of range", port)
	}

	var username, password string
	if len(parts) > 2 {
		username = parts[2]
	}
	if len(parts) > 3 {
		password = parts[3]
	}

	return NewProxy(address, port, username, password, protocolForPort(port)), nil
}

// protocolForPort infers the proxy scheme from port conventions.
func protocolForPort(port int) Protocol {
	switch port {
	case 443, 8443:
		return ProtocolHTTPS
	case 1080, 1081:
		return ProtocolSOCKS5
	default:
		return ProtocolHTTP
	}
}

func parseProxyURL(raw string) (*Proxy, error) {
	var protocol Protocol
	switch {
	case strings.HasPrefix(raw, "http://"):
		protocol = ProtocolHTTP
	case strings.HasPrefix(raw, "https://"):
		protocol = ProtocolHTTPS
	case strings.HasPrefix(raw, "socks5://"):
		protocol = ProtocolSOCKS5
	default:
		return nil, fmt.Errorf("unrecognized scheme")
	}

	rest := raw[len(protocol)+len("://"):]
	var username, password string
	if at := strings.Index(rest, "@"); at >= 0 {
		auth := rest[:at]
		rest = rest[at+1:]
		colon := strings.Index(auth, ":")
		if colon < 0 {
			return nil, fmt.Errorf("credentials missing password")
		}
		username = auth[:colon]
		password = auth[colon+1:]
	}

	colon := strings.LastIndex(rest, ":")
	if colon < 0 {
		return nil, fmt.Errorf("missing port")
	}
	address := rest[:colon]
	port, err := strconv.Atoi(rest[colon+1:])
	if err != nil {
		return nil, fmt.Errorf("port %q is not an integer", rest[colon+1:])
	}
	if address == "" || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid host:port %q", rest)
	}

	return NewProxy(address, port, username, password, protocol), nil
}
