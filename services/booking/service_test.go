package booking

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"petbook/models"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	appts []*models.Appointment
}

func (d *recordingDispatcher) Enqueue(appt *models.Appointment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.appts = append(d.appts, appt)
}

func TestBookAndRoundTrip(t *testing.T) {
	svc := newTestService()
	disp := &recordingDispatcher{}
	svc.Dispatcher = disp

	appt, err := svc.Book("u1", "u1@test.com", models.BookSlotRequest{
		ServiceID:   "2",
		ServiceName: "Vacinação",
		Date:        "2025-06-01",
		Time:        "09:00",
		Notes:       "primeira dose",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.ID == "" {
		t.Fatal("expected generated appointment ID")
	}
	if appt.Status != models.StatusScheduled {
		t.Fatalf("expected initial status %q, got %q", models.StatusScheduled, appt.Status)
	}

	mine, err := svc.ListMine("u1")
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != appt.ID || mine[0].Time != "09:00" || mine[0].Notes != "primeira dose" {
		t.Fatalf("round-trip mismatch via ListMine: %+v", mine)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].ID != appt.ID || all[0].UserEmail != "u1@test.com" {
		t.Fatalf("round-trip mismatch via ListAll: %+v", all)
	}

	if len(disp.appts) != 1 || disp.appts[0].ID != appt.ID {
		t.Fatalf("expected one enqueued confirmation, got %d", len(disp.appts))
	}
}

func TestBookConflictRegardlessOfRequester(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Book("u1", "u1@test.com", models.BookSlotRequest{
		ServiceID: "2", ServiceName: "Vacinação", Date: "2025-06-01", Time: "09:00",
	}); err != nil {
		t.Fatalf("first Book: %v", err)
	}

	_, err := svc.Book("u2", "u2@test.com", models.BookSlotRequest{
		ServiceID: "1", ServiceName: "Exames", Date: "2025-06-01", Time: "09:00",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for double booking, got %v", err)
	}
}

func TestBookConcurrentSameSlot(t *testing.T) {
	svc := newTestService()

	const attempts = 32
	var wg sync.WaitGroup
	var successes int64
	var conflicts int64

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book("u1", "u1@test.com", models.BookSlotRequest{
				ServiceID: "2", ServiceName: "Vacinação", Date: "2025-06-03", Time: "11:00",
			})
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case errors.Is(err, ErrSlotTaken):
				atomic.AddInt64(&conflicts, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one successful booking, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
}

func TestBookValidation(t *testing.T) {
	svc := newTestService()

	cases := []models.BookSlotRequest{
		{},
		{ServiceID: "1", ServiceName: "Exames", Date: "2025-06-01"},
		{ServiceID: "1", ServiceName: "Exames", Date: "01/06/2025", Time: "09:00"},
		{ServiceID: "1", ServiceName: "Exames", Date: "2025-06-01", Time: "25:00"},
		{ServiceID: "1", ServiceName: "Exames", Date: "2025-06-01", Time: "9:00"},
	}
	for _, req := range cases {
		_, err := svc.Book("u1", "u1@test.com", req)
		if err == nil {
			t.Fatalf("expected validation error for %+v", req)
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError for %+v, got %T", req, err)
		}
	}
}

func TestCreateValidatesServiceType(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create("u1", "u1@test.com", models.CreateAppointmentRequest{
		PetName:         "Rex",
		OwnerName:       "Ana",
		AppointmentDate: "2025-06-01",
		AppointmentTime: "09:00",
		ServiceType:     "Adestramento",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown service type, got %v", err)
	}

	appt, err := svc.Create("u1", "u1@test.com", models.CreateAppointmentRequest{
		PetName:         "Rex",
		AppointmentDate: "2025-06-01",
		AppointmentTime: "09:00",
		ServiceType:     "Banho e Tosa",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if appt.OwnerName != "u1@test.com" {
		t.Fatalf("expected owner name to fall back to email, got %q", appt.OwnerName)
	}
}

func TestCreateConflictsWithBookedSlot(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Book("u1", "u1@test.com", models.BookSlotRequest{
		ServiceID: "2", ServiceName: "Vacinação", Date: "2025-06-01", Time: "14:00",
	}); err != nil {
		t.Fatalf("Book: %v", err)
	}

	_, err := svc.Create("u2", "u2@test.com", models.CreateAppointmentRequest{
		PetName: "Mia", OwnerName: "Bia",
		AppointmentDate: "2025-06-01", AppointmentTime: "14:00",
		ServiceType: "Consulta Geral",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken across both creation paths, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc := newTestService()

	appt, err := svc.Book("u1", "u1@test.com", models.BookSlotRequest{
		ServiceID: "2", ServiceName: "Vacinação", Date: "2025-06-01", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	// Unknown ID.
	if _, err := svc.UpdateStatus("missing", models.StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	// Status outside the enum.
	var vErr *ValidationError
	if _, err := svc.UpdateStatus(appt.ID, "Bogus"); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for bogus status, got %v", err)
	}

	// Scheduled cannot jump straight to completed.
	if _, err := svc.UpdateStatus(appt.ID, models.StatusCompleted); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for Agendado -> Concluído, got %v", err)
	}

	updated, err := svc.UpdateStatus(appt.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus to confirmed: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Fatalf("expected status %q, got %q", models.StatusConfirmed, updated.Status)
	}

	if _, err := svc.UpdateStatus(appt.ID, models.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus to completed: %v", err)
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(appt.ID, models.StatusConfirmed); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for transition out of terminal state, got %v", err)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all[0].Status != models.StatusCompleted {
		t.Fatalf("status update not reflected in listing: %q", all[0].Status)
	}
}

func TestListMineOrderedNewestFirst(t *testing.T) {
	svc := newTestService()

	for _, slot := range []struct{ date, time string }{
		{"2025-06-01", "09:00"},
		{"2025-06-02", "10:00"},
		{"2025-06-01", "15:00"},
	} {
		if _, err := svc.Book("u1", "u1@test.com", models.BookSlotRequest{
			ServiceID: "1", ServiceName: "Exames", Date: slot.date, Time: slot.time,
		}); err != nil {
			t.Fatalf("Book %s %s: %v", slot.date, slot.time, err)
		}
	}

	mine, err := svc.ListMine("u1")
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	want := []string{"2025-06-02 10:00", "2025-06-01 15:00", "2025-06-01 09:00"}
	for i, w := range want {
		got := mine[i].Date + " " + mine[i].Time
		if got != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, got)
		}
	}
}
