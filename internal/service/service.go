// Package service hosts many concurrent games behind a gRPC interface.
// Requests and responses are google.protobuf.Struct messages; every game is
// addressed by the session id returned from NewGame.
package service

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/microciv/internal/converter"
	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

// session is one running game. The engine is single-threaded, so every call
// holds mu for its whole duration.
type session struct {
	mu   sync.Mutex
	game *game.Game
}

// Service implements GameServiceServer over in-memory sessions
type Service struct {
	defaults game.Options

	mu       sync.RWMutex
	sessions map[string]*session
}

// New creates a service whose games start from defaults. Seed and terrain may
// be overridden per NewGame request.
func New(defaults game.Options) *Service {
	return &Service{
		defaults: defaults,
		sessions: make(map[string]*session),
	}
}

// Sessions returns the number of live sessions
func (s *Service) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// NewGame starts a game. Optional request fields: seed (number), terrain (string).
func (s *Service) NewGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	opts := s.defaults
	opts.Rand = nil
	fields := req.GetFields()
	if v, ok := fields["seed"]; ok {
		opts.Seed = int64(v.GetNumberValue())
	}
	if v, ok := fields["terrain"]; ok {
		opts.Terrain = models.TerrainID(v.GetStringValue())
	}

	g, err := game.New(opts)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{game: g}
	s.mu.Unlock()
	log.Printf("Started session %s (seed %d, terrain %s)", id, opts.Seed, opts.Terrain)

	resp, err := stateResponse(g, nil)
	if err != nil {
		return nil, err
	}
	resp.Fields["session_id"] = structpb.NewStringValue(id)
	return resp, nil
}

// GetState returns the snapshot of a session
func (s *Service) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, _ map[string]*structpb.Value) error {
		return nil
	})
}

// Build builds one building. Request field: building.
func (s *Service) Build(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, f map[string]*structpb.Value) error {
		return g.TryBuild(models.BuildingType(f["building"].GetStringValue()))
	})
}

// Research starts researching a technology. Request field: technology.
func (s *Service) Research(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, f map[string]*structpb.Value) error {
		return g.TryStartResearch(models.TechID(f["technology"].GetStringValue()))
	})
}

// Train trains one unit. Request field: unit.
func (s *Service) Train(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, f map[string]*structpb.Value) error {
		return g.TryTrainUnit(models.UnitType(f["unit"].GetStringValue()))
	})
}

// Trade accepts a trade offer. Request field: index.
func (s *Service) Trade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, f map[string]*structpb.Value) error {
		v, ok := f["index"]
		if !ok {
			return game.ErrInvalidTrade
		}
		return g.TryTrade(int(v.GetNumberValue()))
	})
}

// GenerateTrades replaces the current trade offers
func (s *Service) GenerateTrades(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, _ map[string]*structpb.Value) error {
		if g.Won() {
			return game.ErrGameWon
		}
		g.GenerateTradeOptions()
		return nil
	})
}

// ChangeTerrain switches the terrain. Request field: terrain.
func (s *Service) ChangeTerrain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.withSession(req, func(g *game.Game, f map[string]*structpb.Value) error {
		return g.TryChangeTerrain(models.TerrainID(f["terrain"].GetStringValue()))
	})
}

// EndTurn resolves the turn and returns its report next to the new state
func (s *Service) EndTurn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	report := sess.game.EndTurn()
	reportStruct, err := converter.TurnReportToStruct(report)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var failure error
	if !report.Resolved {
		failure = game.ErrGameWon
	}
	resp, err := stateResponse(sess.game, failure)
	if err != nil {
		return nil, err
	}
	resp.Fields["report"] = structpb.NewStructValue(reportStruct)
	return resp, nil
}

// EndGame removes a session and returns its final state. Later calls with the
// same id fail with NotFound.
func (s *Service) EndGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	id := req.GetFields()["session_id"].GetStringValue()
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	log.Printf("Ended session %s at turn %d", id, sess.game.Turn())
	return stateResponse(sess.game, nil)
}

func (s *Service) lookup(req *structpb.Struct) (*session, error) {
	id := req.GetFields()["session_id"].GetStringValue()
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown session %s", id)
	}
	return sess, nil
}

// withSession runs an action against a session's game. Game rule failures are
// reported in the response (ok=false, error) rather than as RPC errors.
func (s *Service) withSession(req *structpb.Struct, action func(*game.Game, map[string]*structpb.Value) error) (*structpb.Struct, error) {
	sess, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return stateResponse(sess.game, action(sess.game, req.GetFields()))
}

func stateResponse(g *game.Game, failure error) (*structpb.Struct, error) {
	st, err := converter.SnapshotToStruct(g.Snapshot())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	resp := &structpb.Struct{Fields: map[string]*structpb.Value{
		"ok":    structpb.NewBoolValue(failure == nil),
		"state": structpb.NewStructValue(st),
	}}
	if failure != nil {
		resp.Fields["error"] = structpb.NewStringValue(failure.Error())
	}
	return resp, nil
}
