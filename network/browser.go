package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"github.com/tevify/tevify/log"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// BrowserClient issues requests with a Chrome TLS fingerprint.
//
// Video CDNs commonly reject the default Go Client Hello. HTTP/2 is attempted
// first; when the handshake or the protocol negotiation fails the request is
// retried once over HTTP/1.1. Plain http:// requests use the regular transport.
var BrowserClient = &http.Client{
	Timeout:   time.Minute,
	Transport: &browserTransport{plain: newTransport()},
}

type browserTransport struct {
	plain http.RoundTripper

	h2     *http2.Transport
	h2Once sync.Once
	h1     *http.Transport
	h1Once sync.Once
}

func (t *browserTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.http2().RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// Only bodiless requests are safe to replay.
	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}

	log.Debugf("h2 request to %s failed, retrying over http/1.1: %v", req.URL.Host, err)
	return t.http1().RoundTrip(req.Clone(req.Context()))
}

func (t *browserTransport) http2() *http2.Transport {
	t.h2Once.Do(func() {
		t.h2 = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialChrome(ctx, network, addr, nil)
			},
		}
	})
	return t.h2
}

func (t *browserTransport) http1() *http.Transport {
	t.h1Once.Do(func() {
		t.h1 = &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialChrome(ctx, network, addr, []string{"http/1.1"})
			},
			IdleConnTimeout: 30 * time.Second,
		}
	})
	return t.h1
}

func dialChrome(ctx context.Context, network, addr string, nextProtos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: nextProtos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
