package ping

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"server-availability/internal/models"
)

const (
	ianaProtocolICMP     = 1
	ianaProtocolIPv6ICMP = 58
)

const echoPayload = "server-availability"

// ICMPPinger checks reachability with a raw ICMP echo exchange.
//
// Unprivileged mode uses datagram ICMP sockets, which Linux only allows
// for groups listed in net.ipv4.ping_group_range. Privileged mode uses
// raw sockets and needs CAP_NET_RAW or root.
type ICMPPinger struct {
	Privileged bool
	Timeout    time.Duration
	// Resolver looks up hostnames; nil means net.DefaultResolver
	Resolver *net.Resolver

	seq atomic.Uint32
}

// NewICMP creates a new ICMPPinger
func NewICMP(privileged bool) *ICMPPinger {
	return &ICMPPinger{
		Privileged: privileged,
		Timeout:    DefaultTimeout,
	}
}

type icmpSocket struct {
	network string
	address string
	proto   int
}

func (p *ICMPPinger) socket(v6 bool) icmpSocket {
	switch {
	case v6 && p.Privileged:
		return icmpSocket{"ip6:ipv6-icmp", "::", ianaProtocolIPv6ICMP}
	case v6:
		return icmpSocket{"udp6", "::", ianaProtocolIPv6ICMP}
	case p.Privileged:
		return icmpSocket{"ip4:icmp", "0.0.0.0", ianaProtocolICMP}
	default:
		return icmpSocket{"udp4", "0.0.0.0", ianaProtocolICMP}
	}
}

// Available opens and closes an IPv4 ICMP socket to check permissions
func (p *ICMPPinger) Available() error {
	s := p.socket(false)
	conn, err := icmp.ListenPacket(s.network, s.address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return conn.Close()
}

// Ping sends one echo request to host and waits for the matching reply
func (p *ICMPPinger) Ping(ctx context.Context, host string) models.ProbeResult {
	result := models.ProbeResult{
		Host: host,
	}

	rtt, err := p.echo(ctx, host)
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}

	result.Reachable = true
	result.RTT = float64(rtt.Microseconds()) / 1000
	return result
}

func (p *ICMPPinger) echo(ctx context.Context, host string) (time.Duration, error) {
	// Same bound as the exec backend's kill deadline, DNS included
	ctx, cancel := context.WithTimeout(ctx, p.Timeout+killGrace)
	defer cancel()

	ip, err := resolveHost(ctx, p.resolver(), host)
	if err != nil {
		return 0, err
	}

	v6 := ip.To4() == nil
	s := p.socket(v6)
	conn, err := icmp.ListenPacket(s.network, s.address)
	if err != nil {
		return 0, fmt.Errorf("open icmp socket: %w", err)
	}
	defer conn.Close()

	var dst net.Addr = &net.IPAddr{IP: ip}
	if !p.Privileged {
		dst = &net.UDPAddr{IP: ip}
	}

	id := os.Getpid() & 0xffff
	seq := int(p.seq.Add(1) & 0xffff)
	wb, err := echoRequest(v6, id, seq)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	deadline := start.Add(p.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}

	if n, err := conn.WriteTo(wb, dst); err != nil {
		return 0, fmt.Errorf("send echo: %w", err)
	} else if n != len(wb) {
		return 0, fmt.Errorf("short write: got %v; want %v", n, len(wb))
	}

	// The kernel rewrites the echo ID on datagram sockets
	wantID := id
	if !p.Privileged {
		wantID = -1
	}

	rb := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(rb)
		if err != nil {
			return 0, fmt.Errorf("await reply: %w", err)
		}
		if !samePeer(peer, ip) {
			continue
		}
		if isEchoReply(s.proto, rb[:n], wantID, seq) {
			return time.Since(start), nil
		}
	}
}

func (p *ICMPPinger) resolver() *net.Resolver {
	if p.Resolver != nil {
		return p.Resolver
	}
	return net.DefaultResolver
}

func resolveHost(ctx context.Context, r *net.Resolver, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	addrs, err := r.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("resolve %s: no addresses", host)
	}

	for _, a := range addrs {
		if a.IP.To4() != nil {
			return a.IP, nil
		}
	}
	return addrs[0].IP, nil
}

func echoRequest(v6 bool, id, seq int) ([]byte, error) {
	var typ icmp.Type = ipv4.ICMPTypeEcho
	if v6 {
		typ = ipv6.ICMPTypeEchoRequest
	}

	wm := icmp.Message{
		Type: typ, Code: 0,
		Body: &icmp.Echo{
			ID: id, Seq: seq,
			Data: []byte(echoPayload),
		},
	}
	return wm.Marshal(nil)
}

// isEchoReply reports whether b is an echo reply carrying seq. A negative
// id skips the identifier check.
func isEchoReply(proto int, b []byte, id, seq int) bool {
	rm, err := icmp.ParseMessage(proto, b)
	if err != nil {
		return false
	}

	switch rm.Type {
	case ipv4.ICMPTypeEchoReply, ipv6.ICMPTypeEchoReply:
	default:
		return false
	}

	echo, ok := rm.Body.(*icmp.Echo)
	if !ok {
		return false
	}
	if id >= 0 && echo.ID != id {
		return false
	}
	return echo.Seq == seq
}

func samePeer(peer net.Addr, ip net.IP) bool {
	switch a := peer.(type) {
	case *net.UDPAddr:
		return a.IP.Equal(ip)
	case *net.IPAddr:
		return a.IP.Equal(ip)
	default:
		return false
	}
}
