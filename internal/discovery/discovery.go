// Package discovery advertises a sketchboard host on the local network and
// finds others.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_sketchboard._tcp"

type Advertiser struct {
	server *mdns.Server
}

// Advertise announces this host on port until Shutdown is called.
func Advertise(port int, info ...string) (*Advertiser, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}
	if len(info) == 0 {
		info = []string{"sketchboard"}
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}

	slog.Info("advertising on lan", "service", ServiceType, "host", host, "port", port)
	return &Advertiser{server: server}, nil
}

func (a *Advertiser) Shutdown() error {
	return a.server.Shutdown()
}

// Peer is a host found by Browse.
type Peer struct {
	Name string
	Addr string
	Info []string
}

// Browse queries the network for hosts until timeout or ctx ends and calls
// found for each usable answer.
func Browse(ctx context.Context, timeout time.Duration, found func(Peer)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if p, ok := peerOf(e); ok {
				found(p)
			}
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("query %s: %w", ServiceType, err)
	}
	return ctx.Err()
}

func peerOf(e *mdns.ServiceEntry) (Peer, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Peer{}, false
	}
	return Peer{
		Name: e.Name,
		Addr: fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port),
		Info: e.InfoFields,
	}, true
}
