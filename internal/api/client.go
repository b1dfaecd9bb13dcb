package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

func unary[Req, Res any](hc connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](hc, strings.TrimRight(baseURL, "/")+procedure, clientOptions(opts)...)
}

// AuthServiceClient calls the AuthService.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, AuthResponse]
	login    *connect.Client[LoginRequest, AuthResponse]
	me       *connect.Client[MeRequest, MeResponse]
}

func NewAuthServiceClient(hc connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	return &AuthServiceClient{
		register: unary[RegisterRequest, AuthResponse](hc, baseURL, AuthServiceRegisterProcedure, opts),
		login:    unary[LoginRequest, AuthResponse](hc, baseURL, AuthServiceLoginProcedure, opts),
		me:       unary[MeRequest, MeResponse](hc, baseURL, AuthServiceMeProcedure, opts),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Me(ctx context.Context, req *connect.Request[MeRequest]) (*connect.Response[MeResponse], error) {
	return c.me.CallUnary(ctx, req)
}

// GroupServiceClient calls the GroupService.
type GroupServiceClient struct {
	createGroup *connect.Client[CreateGroupRequest, GroupResponse]
	getGroup    *connect.Client[GetGroupRequest, GroupResponse]
	listGroups  *connect.Client[ListGroupsRequest, ListGroupsResponse]
	addMember   *connect.Client[AddMemberRequest, GroupResponse]
	deleteGroup *connect.Client[DeleteGroupRequest, DeleteResponse]
}

func NewGroupServiceClient(hc connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	return &GroupServiceClient{
		createGroup: unary[CreateGroupRequest, GroupResponse](hc, baseURL, GroupServiceCreateGroupProcedure, opts),
		getGroup:    unary[GetGroupRequest, GroupResponse](hc, baseURL, GroupServiceGetGroupProcedure, opts),
		listGroups:  unary[ListGroupsRequest, ListGroupsResponse](hc, baseURL, GroupServiceListGroupsProcedure, opts),
		addMember:   unary[AddMemberRequest, GroupResponse](hc, baseURL, GroupServiceAddMemberProcedure, opts),
		deleteGroup: unary[DeleteGroupRequest, DeleteResponse](hc, baseURL, GroupServiceDeleteGroupProcedure, opts),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[GroupResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// PlanServiceClient calls the PlanService.
type PlanServiceClient struct {
	createPlan      *connect.Client[CreatePlanRequest, PlanResponse]
	getPlan         *connect.Client[GetPlanRequest, PlanResponse]
	listPlans       *connect.Client[ListPlansRequest, ListPlansResponse]
	setPlanLocation *connect.Client[SetPlanLocationRequest, PlanResponse]
	deletePlan      *connect.Client[DeletePlanRequest, DeleteResponse]
	addNote         *connect.Client[AddNoteRequest, NoteResponse]
	updateNote      *connect.Client[UpdateNoteRequest, NoteResponse]
	deleteNote      *connect.Client[DeleteNoteRequest, DeleteResponse]
	listNotes       *connect.Client[ListNotesRequest, ListNotesResponse]
}

func NewPlanServiceClient(hc connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlanServiceClient {
	return &PlanServiceClient{
		createPlan:      unary[CreatePlanRequest, PlanResponse](hc, baseURL, PlanServiceCreatePlanProcedure, opts),
		getPlan:         unary[GetPlanRequest, PlanResponse](hc, baseURL, PlanServiceGetPlanProcedure, opts),
		listPlans:       unary[ListPlansRequest, ListPlansResponse](hc, baseURL, PlanServiceListPlansProcedure, opts),
		setPlanLocation: unary[SetPlanLocationRequest, PlanResponse](hc, baseURL, PlanServiceSetPlanLocationProcedure, opts),
		deletePlan:      unary[DeletePlanRequest, DeleteResponse](hc, baseURL, PlanServiceDeletePlanProcedure, opts),
		addNote:         unary[AddNoteRequest, NoteResponse](hc, baseURL, PlanServiceAddNoteProcedure, opts),
		updateNote:      unary[UpdateNoteRequest, NoteResponse](hc, baseURL, PlanServiceUpdateNoteProcedure, opts),
		deleteNote:      unary[DeleteNoteRequest, DeleteResponse](hc, baseURL, PlanServiceDeleteNoteProcedure, opts),
		listNotes:       unary[ListNotesRequest, ListNotesResponse](hc, baseURL, PlanServiceListNotesProcedure, opts),
	}
}

func (c *PlanServiceClient) CreatePlan(ctx context.Context, req *connect.Request[CreatePlanRequest]) (*connect.Response[PlanResponse], error) {
	return c.createPlan.CallUnary(ctx, req)
}

func (c *PlanServiceClient) GetPlan(ctx context.Context, req *connect.Request[GetPlanRequest]) (*connect.Response[PlanResponse], error) {
	return c.getPlan.CallUnary(ctx, req)
}

func (c *PlanServiceClient) ListPlans(ctx context.Context, req *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error) {
	return c.listPlans.CallUnary(ctx, req)
}

func (c *PlanServiceClient) SetPlanLocation(ctx context.Context, req *connect.Request[SetPlanLocationRequest]) (*connect.Response[PlanResponse], error) {
	return c.setPlanLocation.CallUnary(ctx, req)
}

func (c *PlanServiceClient) DeletePlan(ctx context.Context, req *connect.Request[DeletePlanRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deletePlan.CallUnary(ctx, req)
}

func (c *PlanServiceClient) AddNote(ctx context.Context, req *connect.Request[AddNoteRequest]) (*connect.Response[NoteResponse], error) {
	return c.addNote.CallUnary(ctx, req)
}

func (c *PlanServiceClient) UpdateNote(ctx context.Context, req *connect.Request[UpdateNoteRequest]) (*connect.Response[NoteResponse], error) {
	return c.updateNote.CallUnary(ctx, req)
}

func (c *PlanServiceClient) DeleteNote(ctx context.Context, req *connect.Request[DeleteNoteRequest]) (*connect.Response[DeleteResponse], error) {
	return c.deleteNote.CallUnary(ctx, req)
}

func (c *PlanServiceClient) ListNotes(ctx context.Context, req *connect.Request[ListNotesRequest]) (*connect.Response[ListNotesResponse], error) {
	return c.listNotes.CallUnary(ctx, req)
}

// ExpenseServiceClient calls the ExpenseService.
type ExpenseServiceClient struct {
	previewSplit     *connect.Client[PreviewSplitRequest, PreviewSplitResponse]
	addExpense       *connect.Client[AddExpenseRequest, AddExpenseResponse]
	deleteExpense    *connect.Client[DeleteExpenseRequest, LedgerResponse]
	getPlanLedger    *connect.Client[GetPlanLedgerRequest, LedgerResponse]
	recordSettlement *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
	deleteSettlement *connect.Client[DeleteSettlementRequest, LedgerResponse]
}

func NewExpenseServiceClient(hc connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	return &ExpenseServiceClient{
		previewSplit:     unary[PreviewSplitRequest, PreviewSplitResponse](hc, baseURL, ExpenseServicePreviewSplitProcedure, opts),
		addExpense:       unary[AddExpenseRequest, AddExpenseResponse](hc, baseURL, ExpenseServiceAddExpenseProcedure, opts),
		deleteExpense:    unary[DeleteExpenseRequest, LedgerResponse](hc, baseURL, ExpenseServiceDeleteExpenseProcedure, opts),
		getPlanLedger:    unary[GetPlanLedgerRequest, LedgerResponse](hc, baseURL, ExpenseServiceGetPlanLedgerProcedure, opts),
		recordSettlement: unary[RecordSettlementRequest, RecordSettlementResponse](hc, baseURL, ExpenseServiceRecordSettlementProcedure, opts),
		deleteSettlement: unary[DeleteSettlementRequest, LedgerResponse](hc, baseURL, ExpenseServiceDeleteSettlementProcedure, opts),
	}
}

func (c *ExpenseServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[LedgerResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetPlanLedger(ctx context.Context, req *connect.Request[GetPlanLedgerRequest]) (*connect.Response[LedgerResponse], error) {
	return c.getPlanLedger.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[DeleteSettlementRequest]) (*connect.Response[LedgerResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}
