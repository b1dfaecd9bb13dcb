package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// PlanService implements api.PlanServiceHandler: plans, their map location
// and their notes.
type PlanService struct {
	store storage.Store
}

var _ api.PlanServiceHandler = (*PlanService)(nil)

func NewPlanService(store storage.Store) *PlanService {
	return &PlanService{store: store}
}

func (s *PlanService) CreatePlan(ctx context.Context, req *connect.Request[api.CreatePlanRequest]) (*connect.Response[api.PlanResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	title := strings.TrimSpace(req.Msg.Title)
	if title == "" {
		return nil, invalidArgument("plan title required")
	}

	plan := &models.Plan{
		GroupID:     group.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Msg.Description),
	}
	if err := s.store.CreatePlan(ctx, plan); err != nil {
		slog.Error("CreatePlan failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Plan created", "plan_id", plan.ID, "group_id", group.ID)
	return connect.NewResponse(&api.PlanResponse{Plan: toAPIPlan(plan)}), nil
}

func (s *PlanService) GetPlan(ctx context.Context, req *connect.Request[api.GetPlanRequest]) (*connect.Response[api.PlanResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	plan, _, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.PlanResponse{Plan: toAPIPlan(plan)}), nil
}

// ListPlans returns a group's plans in creation order.
func (s *PlanService) ListPlans(ctx context.Context, req *connect.Request[api.ListPlansRequest]) (*connect.Response[api.ListPlansResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := memberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	plans, err := s.store.ListPlansByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListPlans failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Plan, len(plans))
	for i, p := range plans {
		out[i] = toAPIPlan(p)
	}
	return connect.NewResponse(&api.ListPlansResponse{Plans: out}), nil
}

// SetPlanLocation saves the point picked on the plan map.
func (s *PlanService) SetPlanLocation(ctx context.Context, req *connect.Request[api.SetPlanLocationRequest]) (*connect.Response[api.PlanResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	lat, lng := req.Msg.Lat, req.Msg.Lng
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, invalidArgument("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil, invalidArgument("longitude %v out of range [-180, 180]", lng)
	}

	plan, _, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	loc := models.Location{Lat: lat, Lng: lng}
	if err := s.store.SetPlanLocation(ctx, plan.ID, loc); err != nil {
		slog.Error("SetPlanLocation failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}
	plan.Location = &loc

	slog.Info("Plan location saved", "plan_id", plan.ID, "lat", lat, "lng", lng)
	return connect.NewResponse(&api.PlanResponse{Plan: toAPIPlan(plan)}), nil
}

// DeletePlan removes a plan with its notes, expenses and settlements.
func (s *PlanService) DeletePlan(ctx context.Context, req *connect.Request[api.DeletePlanRequest]) (*connect.Response[api.DeleteResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	plan, _, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeletePlan(ctx, plan.ID); err != nil {
		slog.Error("DeletePlan failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Plan deleted", "plan_id", plan.ID)
	return connect.NewResponse(&api.DeleteResponse{}), nil
}

func (s *PlanService) AddNote(ctx context.Context, req *connect.Request[api.AddNoteRequest]) (*connect.Response[api.NoteResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Msg.Content)
	if content == "" {
		return nil, invalidArgument("note content required")
	}

	plan, _, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	note := &models.Note{PlanID: plan.ID, Content: content, CreatedBy: userID}
	if err := s.store.CreateNote(ctx, note); err != nil {
		slog.Error("AddNote failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.NoteResponse{Note: toAPINote(note)}), nil
}

func (s *PlanService) UpdateNote(ctx context.Context, req *connect.Request[api.UpdateNoteRequest]) (*connect.Response[api.NoteResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Msg.Content)
	if content == "" {
		return nil, invalidArgument("note content required")
	}

	note, err := s.memberNote(ctx, req.Msg.NoteID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateNote(ctx, note.ID, content); err != nil {
		slog.Error("UpdateNote failed", "note_id", note.ID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetNote(ctx, note.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.NoteResponse{Note: toAPINote(updated)}), nil
}

func (s *PlanService) DeleteNote(ctx context.Context, req *connect.Request[api.DeleteNoteRequest]) (*connect.Response[api.DeleteResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	note, err := s.memberNote(ctx, req.Msg.NoteID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteNote(ctx, note.ID); err != nil {
		slog.Error("DeleteNote failed", "note_id", note.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteResponse{}), nil
}

// ListNotes returns a plan's notes in creation order.
func (s *PlanService) ListNotes(ctx context.Context, req *connect.Request[api.ListNotesRequest]) (*connect.Response[api.ListNotesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	plan, _, err := memberPlan(ctx, s.store, req.Msg.PlanID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	notes, err := s.store.ListNotesByPlan(ctx, plan.ID)
	if err != nil {
		slog.Error("ListNotes failed", "plan_id", plan.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Note, len(notes))
	for i, n := range notes {
		out[i] = toAPINote(n)
	}
	return connect.NewResponse(&api.ListNotesResponse{Notes: out}), nil
}

func (s *PlanService) memberNote(ctx context.Context, noteID, userID string) (*models.Note, error) {
	if strings.TrimSpace(noteID) == "" {
		return nil, invalidArgument("note id required")
	}
	note, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if _, _, err := memberPlan(ctx, s.store, note.PlanID, userID); err != nil {
		return nil, err
	}
	return note, nil
}
