package proxypool

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	xproxy "golang.org/x/net/proxy"
)

// Protocol is the scheme an upstream proxy speaks.
type Protocol string

const (
	ProtocolHTTP   Protocol = "http"
	ProtocolHTTPS  Protocol = "https"
	ProtocolSOCKS5 Protocol = "socks5"
)

// Proxy is one upstream proxy plus its mutable health counters.
// Counters are owned by the Manager and mutated only through its methods.
type Proxy struct {
	address  string
	port     int
	username string
	password string
	protocol Protocol

	lastUsed     time.Time
	failCount    int
	lastFailTime time.Time
	active       bool
}

// NewProxy creates an active proxy with zeroed counters.
// An empty protocol defaults to http.
func NewProxy(address string, port int, username, password string, protocol Protocol) *Proxy {
	if protocol == "" {
		protocol = ProtocolHTTP
	}
	return &Proxy{
		address:  address,
		port:     port,
		username: username,
		password: password,
		protocol: protocol,
		active:   true,
	}
}

// URL assembles the full connection URL, credentials included.
func (p *Proxy) URL() string {
	if p.username != "" && p.password != "" {
		return fmt.Sprintf("%s://%s:%s@%s:%d", p.protocol, p.username, p.password, p.address, p.port)
	}
	return fmt.Sprintf("%s://%s:%d", p.protocol, p.address, p.port)
}

// DisplayName is the log-safe form of the proxy URL, credentials elided.
func (p *Proxy) DisplayName() string {
	return fmt.Sprintf("%s://%s:%d", p.protocol, p.address, p.port)
}

// Address returns the proxy host.
func (p *Proxy) Address() string { return p.address }

// Port returns the proxy port.
func (p *Proxy) Port() int { return p.port }

// Protocol returns the proxy scheme.
func (p *Proxy) Protocol() Protocol { return p.protocol }

// Active reports whether the proxy is currently eligible for selection.
func (p *Proxy) Active() bool { return p.active }

// FailCount returns the consecutive-failure counter.
func (p *Proxy) FailCount() int { return p.failCount }

// Transport returns an http.Transport that routes requests through the proxy.
// SOCKS5 proxies dial through golang.org/x/net/proxy; http and https proxies
// use the standard CONNECT path.
func (p *Proxy) Transport() (*http.Transport, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		base = &http.Transport{}
	}
	transport := base.Clone()

	if p.protocol == ProtocolSOCKS5 {
		var auth *xproxy.Auth
		if p.username != "" && p.password != "" {
			auth = &xproxy.Auth{User: p.username, Password: p.password}
		}
		dialer, err := xproxy.SOCKS5("tcp", net.JoinHostPort(p.address, strconv.Itoa(p.port)), auth, xproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer for %s: %w", p.DisplayName(), err)
		}
		transport.Proxy = nil
		if contextDialer, ok := dialer.(xproxy.ContextDialer); ok {
			transport.DialContext = contextDialer.DialContext
		}
		return transport, nil
	}

	parsed, err := url.Parse(p.URL())
	if err != nil {
		return nil, fmt.Errorf("proxy url for %s: %w", p.DisplayName(), err)
	}
	transport.Proxy = http.ProxyURL(parsed)
	return transport, nil
}
