package service

import (
	"context"
	"net"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/microciv/internal/converter"
	"github.com/napolitain/microciv/internal/game"
	"github.com/napolitain/microciv/internal/models"
)

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	st, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct() error: %v", err)
	}
	return st
}

func newSession(t *testing.T, svc *Service) string {
	t.Helper()
	resp, err := svc.NewGame(context.Background(), request(t, map[string]any{"seed": 42}))
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	id := resp.GetFields()["session_id"].GetStringValue()
	if id == "" {
		t.Fatal("NewGame() returned no session id")
	}
	return id
}

func state(t *testing.T, resp *structpb.Struct) models.Snapshot {
	t.Helper()
	snap, err := converter.StructToSnapshot(resp.GetFields()["state"].GetStructValue())
	if err != nil {
		t.Fatalf("StructToSnapshot() error: %v", err)
	}
	return snap
}

func TestNewGame(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()

	resp, err := svc.NewGame(ctx, request(t, map[string]any{"terrain": "coast"}))
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	snap := state(t, resp)
	if snap.Terrain != models.Coast || snap.Buildings.House != 2 || snap.Resources.Food != 10 {
		t.Errorf("unexpected initial state %+v", snap)
	}

	_, err = svc.NewGame(ctx, request(t, map[string]any{"terrain": "swamp"}))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("unknown terrain: got %v, want InvalidArgument", err)
	}
	if svc.Sessions() != 1 {
		t.Errorf("sessions = %d, want 1", svc.Sessions())
	}
}

func TestBuildAndFailures(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()
	id := newSession(t, svc)

	resp, err := svc.Build(ctx, request(t, map[string]any{"session_id": id, "building": "farm"}))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !resp.GetFields()["ok"].GetBoolValue() {
		t.Fatalf("Build(farm) failed: %s", resp.GetFields()["error"].GetStringValue())
	}
	if got := state(t, resp).Buildings.Farm; got != 1 {
		t.Errorf("farms = %d, want 1", got)
	}

	tests := []struct {
		name   string
		call   func(context.Context, *structpb.Struct) (*structpb.Struct, error)
		fields map[string]any
	}{
		{"unaffordable wall", svc.Build, map[string]any{"building": "wall"}},
		{"unknown building", svc.Build, map[string]any{"building": "castle"}},
		{"no science", svc.Research, map[string]any{"technology": "agriculture"}},
		{"no barracks", svc.Train, map[string]any{"unit": "warrior"}},
		{"no offers", svc.Trade, map[string]any{"index": 0}},
		{"missing index", svc.Trade, map[string]any{}},
		{"unknown terrain", svc.ChangeTerrain, map[string]any{"terrain": "swamp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fields["session_id"] = id
			resp, err := tt.call(ctx, request(t, tt.fields))
			if err != nil {
				t.Fatalf("unexpected RPC error: %v", err)
			}
			if resp.GetFields()["ok"].GetBoolValue() {
				t.Error("expected ok=false")
			}
			if resp.GetFields()["error"].GetStringValue() == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestUnknownSession(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()

	_, err := svc.GetState(ctx, request(t, map[string]any{"session_id": "nope"}))
	if status.Code(err) != codes.NotFound {
		t.Errorf("got %v, want NotFound", err)
	}
	_, err = svc.EndTurn(ctx, request(t, map[string]any{}))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestEndTurnAndTrades(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()
	id := newSession(t, svc)

	resp, err := svc.EndTurn(ctx, request(t, map[string]any{"session_id": id}))
	if err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}
	report := resp.GetFields()["report"].GetStructValue()
	if !report.GetFields()["resolved"].GetBoolValue() {
		t.Error("first turn should resolve")
	}
	if got := state(t, resp).Turn; got != 2 {
		t.Errorf("turn = %d, want 2", got)
	}

	resp, err = svc.GenerateTrades(ctx, request(t, map[string]any{"session_id": id}))
	if err != nil {
		t.Fatalf("GenerateTrades() error: %v", err)
	}
	offers := state(t, resp).TradeOffers
	if len(offers) != game.TradeOfferCount {
		t.Fatalf("offers = %d, want %d", len(offers), game.TradeOfferCount)
	}
}

func TestEndGameRemovesSession(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()
	id := newSession(t, svc)
	if _, err := svc.EndTurn(ctx, request(t, map[string]any{"session_id": id})); err != nil {
		t.Fatalf("EndTurn() error: %v", err)
	}

	resp, err := svc.EndGame(ctx, request(t, map[string]any{"session_id": id}))
	if err != nil {
		t.Fatalf("EndGame() error: %v", err)
	}
	if got := state(t, resp).Turn; got != 2 {
		t.Errorf("final turn = %d, want 2", got)
	}
	if svc.Sessions() != 0 {
		t.Errorf("sessions = %d, want 0", svc.Sessions())
	}
	_, err = svc.GetState(ctx, request(t, map[string]any{"session_id": id}))
	if status.Code(err) != codes.NotFound {
		t.Errorf("ended session: got %v, want NotFound", err)
	}
	_, err = svc.EndGame(ctx, request(t, map[string]any{"session_id": id}))
	if status.Code(err) != codes.NotFound {
		t.Errorf("second EndGame: got %v, want NotFound", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()
	a, b := newSession(t, svc), newSession(t, svc)
	if a == b {
		t.Fatal("session ids collide")
	}

	if _, err := svc.Build(ctx, request(t, map[string]any{"session_id": a, "building": "farm"})); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	resp, err := svc.GetState(ctx, request(t, map[string]any{"session_id": b}))
	if err != nil {
		t.Fatalf("GetState() error: %v", err)
	}
	if state(t, resp).Buildings.Farm != 0 {
		t.Error("build leaked into another session")
	}
}

func TestConcurrentEndTurn(t *testing.T) {
	svc := New(game.DefaultOptions())
	ctx := context.Background()
	id := newSession(t, svc)

	const workers = 8
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := structpb.NewStruct(map[string]any{"session_id": id})
			if _, err := svc.EndTurn(ctx, req); err != nil {
				t.Errorf("EndTurn() error: %v", err)
			}
		}()
	}
	wg.Wait()

	resp, err := svc.GetState(ctx, request(t, map[string]any{"session_id": id}))
	if err != nil {
		t.Fatalf("GetState() error: %v", err)
	}
	if got := state(t, resp).Turn; got != workers+1 {
		t.Errorf("turn = %d, want %d", got, workers+1)
	}
}

func dialBufconn(t *testing.T, opts ...grpc.ServerOption) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	Register(srv, New(game.DefaultOptions()))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestGRPCRoundTrip(t *testing.T) {
	client := dialBufconn(t)
	ctx := context.Background()

	resp, err := client.Call(ctx, "NewGame", request(t, map[string]any{"seed": 7}))
	if err != nil {
		t.Fatalf("NewGame RPC error: %v", err)
	}
	id := resp.GetFields()["session_id"].GetStringValue()

	resp, err = client.Call(ctx, "Build", request(t, map[string]any{"session_id": id, "building": "farm"}))
	if err != nil {
		t.Fatalf("Build RPC error: %v", err)
	}
	if state(t, resp).Buildings.Farm != 1 {
		t.Error("farm not built over gRPC")
	}

	if _, err := client.Call(ctx, "Conquer", request(t, map[string]any{})); status.Code(err) != codes.Unimplemented {
		t.Errorf("unknown method: got %v, want Unimplemented", err)
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	const burst = 3
	client := dialBufconn(t, grpc.UnaryInterceptor(RateLimit(0.001, burst)))
	ctx := context.Background()

	for i := range burst {
		if _, err := client.Call(ctx, "NewGame", request(t, map[string]any{})); err != nil {
			t.Fatalf("call %d rejected: %v", i, err)
		}
	}
	_, err := client.Call(ctx, "NewGame", request(t, map[string]any{}))
	if status.Code(err) != codes.ResourceExhausted {
		t.Errorf("got %v, want ResourceExhausted", err)
	}
}
