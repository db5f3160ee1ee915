// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navsync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/olegiv/navedit/internal/model"
	"github.com/olegiv/navedit/internal/testutil"
)

type recordedCall struct {
	Method string
	Path   string
	Body   string
}

// fakeTransport records every call and answers from canned responses.
type fakeTransport struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]any
	failures  map[string]error
	block     chan struct{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		responses: make(map[string]any),
		failures:  make(map[string]error),
	}
}

func (f *fakeTransport) do(method, path string, body, out any) error {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	call := recordedCall{Method: method, Path: path}
	if body != nil {
		b, _ := json.Marshal(body)
		call.Body = string(b)
	}
	f.calls = append(f.calls, call)

	key := method + " " + path
	if err, ok := f.failures[key]; ok {
		return err
	}
	if resp, ok := f.responses[key]; ok && out != nil {
		b, _ := json.Marshal(resp)
		return json.Unmarshal(b, out)
	}
	return nil
}

func (f *fakeTransport) Get(_ context.Context, path string, out any) error {
	return f.do(http.MethodGet, path, nil, out)
}

func (f *fakeTransport) Post(_ context.Context, path string, body, out any) error {
	return f.do(http.MethodPost, path, body, out)
}

func (f *fakeTransport) Patch(_ context.Context, path string, body, out any) error {
	return f.do(http.MethodPatch, path, body, out)
}

func (f *fakeTransport) Delete(_ context.Context, path string) error {
	return f.do(http.MethodDelete, path, nil, nil)
}

func (f *fakeTransport) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func newTestController(tr Transport) *Controller {
	return NewController(tr, testutil.TestLogger(), Config{RequestTimeout: 5 * time.Second})
}

func waitTask[T any](t *testing.T, task *Task[T]) (T, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := task.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("task %s did not finish", task.Op)
	}
	return res, err
}

func TestController_CreateNode(t *testing.T) {
	tr := newFakeTransport()
	tr.responses["POST /navigations"] = model.Navigation{ID: 7, Name: model.PlaceholderNavigationName, Position: 2, ParentID: model.Int64Ptr(1)}
	c := newTestController(tr)

	var hooked model.Navigation
	task := c.CreateNode(model.Int64Ptr(1), 2, func(n model.Navigation, err error) {
		hooked = n
	})
	created, err := waitTask(t, task)
	if err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("created.ID = %d, want 7", created.ID)
	}
	if hooked.ID != 7 {
		t.Errorf("hook saw ID %d, want 7", hooked.ID)
	}

	calls := tr.recorded()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	want := `{"name":"New navigation","navigation_parent_id":1,"position":2,"item_type":"NAV"}`
	if calls[0].Body != want {
		t.Errorf("body = %s, want %s", calls[0].Body, want)
	}
}

func TestController_MoveNodes_OnePatchPerPlacement(t *testing.T) {
	tr := newFakeTransport()
	c := newTestController(tr)

	placements := []model.Placement{
		{ID: 3, Position: 0, ParentID: nil},
		{ID: 4, Position: 1, ParentID: model.Int64Ptr(9)},
	}
	if _, err := waitTask(t, c.MoveNodes(placements, nil)); err != nil {
		t.Fatalf("MoveNodes: %v", err)
	}

	want := []recordedCall{
		{Method: http.MethodPatch, Path: "/navigations/3", Body: `{"position":0,"navigation_parent_id":null}`},
		{Method: http.MethodPatch, Path: "/navigations/4", Body: `{"position":1,"navigation_parent_id":9}`},
	}
	calls := tr.recorded()
	if len(calls) != len(want) {
		t.Fatalf("calls = %d, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call[%d] = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestController_MoveNodes_Empty(t *testing.T) {
	tr := newFakeTransport()
	c := newTestController(tr)

	hookCalled := false
	task := c.MoveNodes(nil, func([]model.Navigation, error) { hookCalled = true })
	select {
	case <-task.Done():
	default:
		t.Fatal("empty move should complete immediately")
	}
	if !hookCalled {
		t.Error("hook not called for empty move")
	}
	if n := len(tr.recorded()); n != 0 {
		t.Errorf("calls = %d, want 0", n)
	}
}

func TestController_MoveNodes_PartialFailure(t *testing.T) {
	tr := newFakeTransport()
	tr.failures["PATCH /navigations/3"] = errors.New("boom")
	tr.responses["PATCH /navigations/4"] = model.Navigation{ID: 4, Position: 1}
	c := newTestController(tr)

	placements := []model.Placement{{ID: 3, Position: 0}, {ID: 4, Position: 1}}
	confirmed, err := waitTask(t, c.MoveNodes(placements, nil))
	if err == nil {
		t.Fatal("expected error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error %T is not a *RequestError", err)
	}
	if reqErr.Path != "/navigations/3" {
		t.Errorf("failed path = %q, want /navigations/3", reqErr.Path)
	}
	if len(tr.recorded()) != 2 {
		t.Errorf("second placement should still be sent")
	}
	if len(confirmed) != 1 || confirmed[0].ID != 4 {
		t.Errorf("confirmed = %+v, want node 4 only", confirmed)
	}
}

func TestController_MovePage(t *testing.T) {
	tr := newFakeTransport()
	tr.responses["PATCH /navigations/1/pages/5"] = model.Navigation{
		ID:    1,
		Pages: []model.Page{{ID: 5, Position: 0}, {ID: 6, Position: 1}},
	}
	c := newTestController(tr)

	nav, err := waitTask(t, c.MovePage(1, 5, 0, nil))
	if err != nil {
		t.Fatalf("MovePage: %v", err)
	}
	if len(nav.Pages) != 2 || nav.Pages[0].ID != 5 {
		t.Errorf("pages = %+v", nav.Pages)
	}

	calls := tr.recorded()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Body != `{"position":0}` {
		t.Errorf("body = %s", calls[0].Body)
	}
}

func TestController_FailureRunsHook(t *testing.T) {
	tr := newFakeTransport()
	tr.failures["DELETE /navigations/2"] = errors.New("unavailable")
	c := newTestController(tr)

	var hookErr error
	_, err := waitTask(t, c.DeleteNode(2, func(_ struct{}, err error) { hookErr = err }))
	if err == nil {
		t.Fatal("expected error")
	}
	if hookErr == nil {
		t.Error("hook did not receive the error")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Method != http.MethodDelete {
		t.Errorf("err = %v, want DELETE RequestError", err)
	}
}

func TestController_PageCreateAndDelete(t *testing.T) {
	tr := newFakeTransport()
	tr.responses["POST /navigations/1/pages"] = model.Page{ID: 11, Title: model.PlaceholderPageTitle, NavigationID: 1}
	c := newTestController(tr)

	page, err := waitTask(t, c.CreatePage(1, nil))
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if page.ID != 11 {
		t.Errorf("page.ID = %d, want 11", page.ID)
	}
	if _, err := waitTask(t, c.DeletePage(1, 11, nil)); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}

	calls := tr.recorded()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[0].Body != `{"title":"New page","content":""}` {
		t.Errorf("create body = %s", calls[0].Body)
	}
	if calls[1].Method != http.MethodDelete || calls[1].Path != "/navigations/1/pages/11" {
		t.Errorf("delete call = %+v", calls[1])
	}
}

func TestController_Wait(t *testing.T) {
	tr := newFakeTransport()
	tr.block = make(chan struct{})
	c := newTestController(tr)

	t1 := c.UpdateNode(1, model.NodeFields{Name: model.StringPtr("A")}, nil)
	t2 := c.DeleteNode(2, nil)

	waited := make(chan struct{})
	go func() {
		c.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned before tasks finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(tr.block)

	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return")
	}
	for _, done := range []<-chan struct{}{t1.Done(), t2.Done()} {
		select {
		case <-done:
		default:
			t.Error("task not done after Wait")
		}
	}
}

func TestController_Load(t *testing.T) {
	tr := newFakeTransport()
	tr.responses["GET /navigations"] = []model.Navigation{{ID: 1, Name: "Root"}}
	c := newTestController(tr)

	tree, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tree) != 1 || tree[0].Name != "Root" {
		t.Errorf("tree = %+v", tree)
	}
}

func TestTask_Completed(t *testing.T) {
	task := Completed("noop", 3, nil)
	if task.Key == "" {
		t.Error("Key is empty")
	}
	got, err := task.Wait(context.Background())
	if err != nil || got != 3 {
		t.Errorf("Wait() = %d, %v; want 3, nil", got, err)
	}
}
