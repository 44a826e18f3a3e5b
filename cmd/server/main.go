package main

import (
	"flag"
	"fmt"
	"log"
	"net"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/napolitain/microciv/internal/config"
	"github.com/napolitain/microciv/internal/service"
)

var (
	port       = flag.Int("port", 50051, "The server port")
	configPath = flag.String("config", "", "Path to a YAML game config")
	rateLimit  = flag.Float64("rate", service.DefaultRateLimit, "Requests per second allowed per client")
	rateBurst  = flag.Int("burst", service.DefaultRateBurst, "Request burst allowed per client")
)

// newServer builds a gRPC server hosting the game service
func newServer(cfg config.Config, limit rate.Limit, burst int) (*grpc.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := grpc.NewServer(grpc.UnaryInterceptor(service.RateLimit(limit, burst)))
	service.Register(s, service.New(cfg.Options()))
	return s, nil
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	log.Printf("Game defaults: seed %d, terrain %s, season length %d", cfg.Seed, cfg.Terrain, cfg.SeasonLength)

	s, err := newServer(cfg, rate.Limit(*rateLimit), *rateBurst)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}

	log.Printf("gRPC server listening on port %d", *port)
	if err := s.Serve(lis); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
