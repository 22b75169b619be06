package notifications_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/notifications"
	"github.com/deskops/notifykit/pkg/preferences"
	"github.com/deskops/notifykit/pkg/templates"
)

// MockStorage for testing Factory error paths.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Create(ctx context.Context, notif notifications.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *MockStorage) Get(ctx context.Context, recipientID, notifID string) (*notifications.Notification, error) {
	args := m.Called(ctx, recipientID, notifID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.Notification), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, recipientID string, opts notifications.ListOptions) ([]notifications.Notification, error) {
	args := m.Called(ctx, recipientID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notifications.Notification), args.Error(1)
}

func (m *MockStorage) MarkRead(ctx context.Context, recipientID string, notifIDs ...string) error {
	args := m.Called(ctx, recipientID, notifIDs)
	return args.Error(0)
}

func (m *MockStorage) Snooze(ctx context.Context, recipientID, notifID string, until time.Time) error {
	args := m.Called(ctx, recipientID, notifID, until)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, recipientID string, notifIDs ...string) error {
	args := m.Called(ctx, recipientID, notifIDs)
	return args.Error(0)
}

func (m *MockStorage) DeleteAll(ctx context.Context, recipientID string) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *MockStorage) CountUnread(ctx context.Context, recipientID string) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func newTestPrefs(t *testing.T, prefs ...preferences.Preference) *preferences.Service {
	t.Helper()

	storage := preferences.NewMemoryStorage()
	svc := preferences.NewService(storage)
	for _, p := range prefs {
		require.NoError(t, svc.Update(context.Background(), p))
	}
	return svc
}

// 2025-03-05 is a Wednesday.
func fixedClock(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 3, 5, hour, minute, 0, 0, time.UTC)
	}
}

func TestFactory_Create_Validation(t *testing.T) {
	t.Parallel()

	factory := notifications.NewFactory(newTestPrefs(t), notifications.NewMemoryStorage())

	tests := []struct {
		name  string
		input notifications.CreateInput
	}{
		{
			name:  "missing recipient",
			input: notifications.CreateInput{Title: "t", Message: "m"},
		},
		{
			name:  "missing title",
			input: notifications.CreateInput{RecipientID: "u1", Message: "m"},
		},
		{
			name:  "missing message",
			input: notifications.CreateInput{RecipientID: "u1", Title: "t"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			notif, err := factory.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, notifications.ErrMissingField)
			assert.Nil(t, notif)
		})
	}
}

func TestFactory_Create_FailOpenWithoutPreferences(t *testing.T) {
	t.Parallel()

	store := notifications.NewMemoryStorage()
	factory := notifications.NewFactory(newTestPrefs(t), store)

	notif, err := factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "user-no-prefs",
		Title:       "Maintenance due",
		Message:     "Server rack B is due for scheduled maintenance.",
		Type:        notifications.TypeMaintenance,
		Category:    notifications.CategoryMaintenanceAlerts,
	})
	require.NoError(t, err)
	require.NotNil(t, notif)

	assert.NotEmpty(t, notif.ID)
	assert.Equal(t, notifications.PriorityMedium, notif.Priority, "missing priority defaults to medium")
	assert.False(t, notif.Read)

	listed, err := store.List(context.Background(), "user-no-prefs", notifications.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestFactory_Create_QuietHours(t *testing.T) {
	t.Parallel()

	dndPref := preferences.Default("u1")
	dndPref.DNDEnabled = true
	dndPref.DNDStart = "22:00"
	dndPref.DNDEnd = "06:00"

	tests := []struct {
		name      string
		clock     func() time.Time
		priority  notifications.Priority
		delivered bool
	}{
		{
			name:      "medium suppressed inside wrap window",
			clock:     fixedClock(23, 0),
			priority:  notifications.PriorityMedium,
			delivered: false,
		},
		{
			name:      "medium suppressed after midnight",
			clock:     fixedClock(5, 59),
			priority:  notifications.PriorityMedium,
			delivered: false,
		},
		{
			name:      "critical bypasses the window",
			clock:     fixedClock(23, 0),
			priority:  notifications.PriorityCritical,
			delivered: true,
		},
		{
			name:      "medium delivered outside the window",
			clock:     fixedClock(12, 0),
			priority:  notifications.PriorityMedium,
			delivered: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := notifications.NewMemoryStorage()
			factory := notifications.NewFactory(newTestPrefs(t, dndPref), store,
				notifications.WithFactoryClock(tt.clock),
			)

			notif, err := factory.Create(context.Background(), notifications.CreateInput{
				RecipientID: "u1",
				Title:       "Ticket updated",
				Message:     "Status changed to in progress.",
				Type:        notifications.TypeTicket,
				Priority:    tt.priority,
				Category:    notifications.CategoryTicketStatusChanges,
			})
			require.NoError(t, err)

			listed, listErr := store.List(context.Background(), "u1", notifications.ListOptions{})
			require.NoError(t, listErr)

			if tt.delivered {
				require.NotNil(t, notif)
				assert.Len(t, listed, 1)
			} else {
				assert.Nil(t, notif, "suppression returns nil notification and nil error")
				assert.Empty(t, listed, "suppressed notifications are never persisted")
			}
		})
	}
}

func TestFactory_Create_CategoryGate(t *testing.T) {
	t.Parallel()

	pref := preferences.Default("u1")
	pref.TicketAssignments = false

	store := notifications.NewMemoryStorage()
	factory := notifications.NewFactory(newTestPrefs(t, pref), store)

	notif, err := factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "u1",
		Title:       "Ticket assigned to you",
		Message:     "Ticket #12 was assigned to you.",
		Type:        notifications.TypeTicket,
		Category:    notifications.CategoryTicketAssignments,
	})
	require.NoError(t, err)
	assert.Nil(t, notif)

	// Other categories stay unaffected.
	notif, err = factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "u1",
		Title:       "Ticket resolved",
		Message:     "Ticket #12 moved to resolved.",
		Type:        notifications.TypeTicket,
		Category:    notifications.CategoryTicketStatusChanges,
	})
	require.NoError(t, err)
	assert.NotNil(t, notif)
}

func TestFactory_Create_CriticalBypassesCategoryGate(t *testing.T) {
	t.Parallel()

	pref := preferences.Default("u1")
	pref.SystemAnnouncements = false

	store := notifications.NewMemoryStorage()
	factory := notifications.NewFactory(newTestPrefs(t, pref), store)

	notif, err := factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "u1",
		Title:       "System outage",
		Message:     "Primary database cluster is unreachable.",
		Type:        notifications.TypeSystem,
		Priority:    notifications.PriorityCritical,
		Category:    notifications.CategorySystemAnnouncements,
	})
	require.NoError(t, err)
	require.NotNil(t, notif, "critical must persist even when the matching toggle is off")
	assert.Equal(t, notifications.PriorityCritical, notif.Priority)

	listed, err := store.List(context.Background(), "u1", notifications.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// Non-critical priority for the same recipient still hits the gate.
	notif, err = factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "u1",
		Title:       "Planned downtime",
		Message:     "Maintenance window on Saturday.",
		Type:        notifications.TypeSystem,
		Priority:    notifications.PriorityHigh,
		Category:    notifications.CategorySystemAnnouncements,
	})
	require.NoError(t, err)
	assert.Nil(t, notif)
}

func TestFactory_Create_CategoryInference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input notifications.CreateInput
		want  notifications.Category
	}{
		{
			name: "ticket with assignment wording",
			input: notifications.CreateInput{
				RecipientID: "u1",
				Title:       "New ticket assigned",
				Message:     "You were assigned ticket #9.",
				Type:        notifications.TypeTicket,
			},
			want: notifications.CategoryTicketAssignments,
		},
		{
			name: "ticket without assignment wording",
			input: notifications.CreateInput{
				RecipientID: "u1",
				Title:       "Ticket closed",
				Message:     "Ticket #9 was closed.",
				Type:        notifications.TypeTicket,
			},
			want: notifications.CategoryTicketStatusChanges,
		},
		{
			name: "asset with upgrade wording",
			input: notifications.CreateInput{
				RecipientID: "u1",
				Title:       "Upgrade approved",
				Message:     "RAM upgrade for laptop L-42 approved.",
				Type:        notifications.TypeAsset,
			},
			want: notifications.CategoryUpgradeRequests,
		},
		{
			name: "plain asset event",
			input: notifications.CreateInput{
				RecipientID: "u1",
				Title:       "Asset checked out",
				Message:     "Laptop L-42 checked out to you.",
				Type:        notifications.TypeAsset,
			},
			want: notifications.CategoryAssetAssignments,
		},
		{
			name: "general event falls back to alerts",
			input: notifications.CreateInput{
				RecipientID: "u1",
				Title:       "Heads up",
				Message:     "Something happened.",
			},
			want: notifications.CategoryAlerts,
		},
		{
			name: "explicit category wins over wording",
			input: notifications.CreateInput{
				RecipientID: "u1",
				Title:       "New ticket assigned",
				Message:     "You were assigned ticket #9.",
				Type:        notifications.TypeTicket,
				Category:    notifications.CategorySystemAnnouncements,
			},
			want: notifications.CategorySystemAnnouncements,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			factory := notifications.NewFactory(newTestPrefs(t), notifications.NewMemoryStorage())

			notif, err := factory.Create(context.Background(), tt.input)
			require.NoError(t, err)
			require.NotNil(t, notif)
			assert.Equal(t, tt.want, notif.Category)
		})
	}
}

func TestFactory_Create_StorageError(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("connection refused")

	mockStorage := new(MockStorage)
	mockStorage.On("Create", mock.Anything, mock.Anything).Return(storageErr)

	factory := notifications.NewFactory(newTestPrefs(t), mockStorage)

	notif, err := factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "u1",
		Title:       "t",
		Message:     "m",
	})
	require.ErrorIs(t, err, storageErr)
	assert.Nil(t, notif)
	mockStorage.AssertExpectations(t)
}

func TestFactory_Create_PublishesToHub(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)

	factory := notifications.NewFactory(newTestPrefs(t), notifications.NewMemoryStorage(),
		notifications.WithFactoryHub(hub),
	)

	created, err := factory.Create(context.Background(), notifications.CreateInput{
		RecipientID: "u1",
		Title:       "Live one",
		Message:     "Should arrive on the stream.",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	select {
	case got := <-stream:
		assert.Equal(t, created.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("notification never reached the hub subscriber")
	}
}

func TestFactory_CreateFromTemplate(t *testing.T) {
	t.Parallel()

	tpl := templates.Template{
		ID:              "tpl-1",
		Name:            "ticket-assigned",
		Category:        string(notifications.CategoryTicketAssignments),
		Type:            string(notifications.TypeTicket),
		Priority:        string(notifications.PriorityHigh),
		TitleTemplate:   "Ticket {{ticketId}} assigned",
		MessageTemplate: "Ticket {{ticketId}} was assigned to {{assignee}}.",
		Active:          true,
	}

	store := notifications.NewMemoryStorage()
	factory := notifications.NewFactory(newTestPrefs(t), store)

	notif, err := factory.CreateFromTemplate(context.Background(), tpl, "u1",
		map[string]string{"ticketId": "#77", "assignee": "you"}, "ticket-77")
	require.NoError(t, err)
	require.NotNil(t, notif)

	assert.Equal(t, "Ticket #77 assigned", notif.Title)
	assert.Equal(t, "Ticket #77 was assigned to you.", notif.Message)
	assert.Equal(t, notifications.PriorityHigh, notif.Priority)
	assert.Equal(t, notifications.CategoryTicketAssignments, notif.Category)
	assert.Equal(t, "ticket-77", notif.EntityID)
}

func TestFactory_CreateFromTemplate_Inactive(t *testing.T) {
	t.Parallel()

	factory := notifications.NewFactory(newTestPrefs(t), notifications.NewMemoryStorage())

	notif, err := factory.CreateFromTemplate(context.Background(),
		templates.Template{ID: "tpl-1", Name: "old", Active: false}, "u1", nil, "")
	assert.ErrorIs(t, err, templates.ErrTemplateInactive)
	assert.Nil(t, notif)
}
