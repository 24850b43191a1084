package applicationsrv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/internhub/pkg/fsx"
	"github.com/Abraxas-365/internhub/pkg/kernel"
	"github.com/Abraxas-365/internhub/recruitment/application"
	"github.com/Abraxas-365/internhub/recruitment/internship"
	"github.com/Abraxas-365/internhub/recruitment/notification"
)

// ============================================================================
// Applications
// ============================================================================

type memApplications struct {
	mu   sync.Mutex
	apps map[kernel.ApplicationID]*application.Application

	createErr    error
	beforeAppend func(app *application.Application)
}

func newMemApplications() *memApplications {
	return &memApplications{apps: make(map[kernel.ApplicationID]*application.Application)}
}

func clone(a *application.Application) *application.Application {
	cp := *a
	cp.Timeline = append([]application.TimelineEntry(nil), a.Timeline...)
	return &cp
}

func (r *memApplications) Create(_ context.Context, app *application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range r.apps {
		if a.StudentID == app.StudentID && a.InternshipID == app.InternshipID {
			return application.ErrDuplicate()
		}
	}
	r.apps[app.ID] = clone(app)
	return nil
}

func (r *memApplications) GetByID(_ context.Context, id kernel.ApplicationID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return clone(a), nil
}

func (r *memApplications) FindByStudentAndInternship(_ context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.StudentID == studentID && a.InternshipID == internshipID {
			return clone(a), nil
		}
	}
	return nil, application.ErrApplicationNotFound()
}

func (r *memApplications) ExistsByStudentAndInternship(ctx context.Context, studentID kernel.UserID, internshipID kernel.InternshipID) (bool, error) {
	_, err := r.FindByStudentAndInternship(ctx, studentID, internshipID)
	return err == nil, nil
}

func (r *memApplications) AppendTransition(_ context.Context, id kernel.ApplicationID, expected application.Status, entry application.TimelineEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return application.ErrApplicationNotFound()
	}
	if r.beforeAppend != nil {
		r.beforeAppend(a)
	}
	if a.Status != expected {
		return application.ErrConcurrentUpdate()
	}
	a.Timeline = append(a.Timeline, entry)
	a.Status = entry.Status
	a.CurrentRound = entry.Round
	a.UpdatedAt = entry.UpdatedAt
	return nil
}

func (r *memApplications) list(keep func(*application.Application) bool) []*application.ApplicationWithDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*application.ApplicationWithDetails{}
	for _, a := range r.apps {
		if keep(a) {
			out = append(out, &application.ApplicationWithDetails{Application: *clone(a)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memApplications) ListByStudent(_ context.Context, studentID kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	return r.list(func(a *application.Application) bool { return a.StudentID == studentID }), nil
}

func (r *memApplications) ListByInternship(_ context.Context, internshipID kernel.InternshipID) ([]*application.ApplicationWithDetails, error) {
	return r.list(func(a *application.Application) bool { return a.InternshipID == internshipID }), nil
}

func (r *memApplications) ListByPoster(_ context.Context, _ kernel.UserID) ([]*application.ApplicationWithDetails, error) {
	return nil, errors.New("not used")
}

func (r *memApplications) ListRecent(_ context.Context, limit int) ([]*application.ApplicationWithDetails, error) {
	all := r.list(func(*application.Application) bool { return true })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memApplications) List(_ context.Context) ([]*application.ApplicationWithDetails, error) {
	return r.list(func(*application.Application) bool { return true }), nil
}

// ============================================================================
// Internships
// ============================================================================

type memInternships struct {
	mu    sync.Mutex
	items map[kernel.InternshipID]*internship.Internship
}

func newMemInternships(list ...*internship.Internship) *memInternships {
	r := &memInternships{items: make(map[kernel.InternshipID]*internship.Internship)}
	for _, i := range list {
		r.items[i.ID] = i
	}
	return r
}

func (r *memInternships) Create(_ context.Context, i *internship.Internship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID] = i
	return nil
}

func (r *memInternships) Update(ctx context.Context, i *internship.Internship) error {
	return r.Create(ctx, i)
}

func (r *memInternships) Delete(_ context.Context, id kernel.InternshipID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memInternships) GetByID(_ context.Context, id kernel.InternshipID) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.items[id]
	if !ok {
		return nil, internship.ErrInternshipNotFound()
	}
	cp := *i
	return &cp, nil
}

func (r *memInternships) List(_ context.Context) ([]*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*internship.Internship{}
	for _, i := range r.items {
		out = append(out, i)
	}
	return out, nil
}

func (r *memInternships) ListByPoster(ctx context.Context, posterID kernel.UserID) ([]*internship.Internship, error) {
	all, _ := r.List(ctx)
	out := []*internship.Internship{}
	for _, i := range all {
		if i.PostedBy == posterID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memInternships) CountApplications(_ context.Context, _ kernel.InternshipID) (int64, error) {
	return 0, nil
}

// ============================================================================
// Blobs, notifications and inspection
// ============================================================================

type memFS struct {
	mu       sync.Mutex
	files    map[string][]byte
	writeErr error
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (f *memFS) ReadFile(_ context.Context, p string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[p]
	if !ok {
		return nil, fsx.ErrNotExist
	}
	return data, nil
}

func (f *memFS) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, err := f.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *memFS) Exists(_ context.Context, p string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[p]
	return ok, nil
}

func (f *memFS) WriteFile(_ context.Context, p string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[p] = data
	return nil
}

func (f *memFS) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return f.WriteFile(ctx, p, data)
}

func (f *memFS) DeleteFile(_ context.Context, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, p)
	return nil
}

func (f *memFS) Join(elem ...string) string {
	return strings.Join(elem, "/")
}

func (f *memFS) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, req notification.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, req)
	return nil
}

func (n *recordingNotifier) to(recipient kernel.UserID) []notification.CreateNotificationRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification.CreateNotificationRequest
	for _, r := range n.sent {
		if r.RecipientID == recipient {
			out = append(out, r)
		}
	}
	return out
}

type stubInspector struct {
	err error
}

func (s stubInspector) Inspect(_ []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}
