// Package memory implements the repository contracts on top of process
// memory. It backs the DB_DRIVER=memory mode and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"clinic-service/internal/model"
	"clinic-service/internal/repository"
)

// DB is a mutex guarded set of tables with sequential ids
type DB struct {
	mu           sync.RWMutex
	now          func() time.Time
	seq          map[string]uint
	clinics      map[uint]model.Clinic
	users        map[uint]model.User
	patients     map[uint]model.Patient
	appointments map[uint]model.Appointment
	equipment    map[uint]model.Equipment
}

// NewDB returns an empty database
func NewDB() *DB {
	return &DB{
		now:          time.Now,
		seq:          make(map[string]uint),
		clinics:      make(map[uint]model.Clinic),
		users:        make(map[uint]model.User),
		patients:     make(map[uint]model.Patient),
		appointments: make(map[uint]model.Appointment),
		equipment:    make(map[uint]model.Equipment),
	}
}

// NewStore returns a repository.Store whose repositories share one DB
func NewStore(db *DB) *repository.Store {
	return &repository.Store{
		Clinics:      &clinicRepository{db: db},
		Users:        &userRepository{db: db},
		Patients:     &patientRepository{db: db},
		Appointments: &appointmentRepository{db: db},
		Equipment:    &equipmentRepository{db: db},
	}
}

// nextID must be called with mu held for writing
func (d *DB) nextID(table string) uint {
	d.seq[table]++
	return d.seq[table]
}

type clinicRepository struct{ db *DB }

func (r *clinicRepository) GetByID(_ context.Context, id uint) (*model.Clinic, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.clinics[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *clinicRepository) Update(_ context.Context, clinic *model.Clinic) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.clinics[clinic.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = clinic.Name
	stored.UpdatedAt = r.db.now()
	r.db.clinics[clinic.ID] = stored
	*clinic = stored
	return nil
}

type userRepository struct{ db *DB }

func (r *userRepository) GetByID(_ context.Context, id uint) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) CreateWithClinic(_ context.Context, clinic *model.Clinic, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	// checked before any write so a conflict leaves no orphan clinic
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	now := r.db.now()
	clinic.ID = r.db.nextID("clinics")
	clinic.CreatedAt, clinic.UpdatedAt = now, now
	r.db.clinics[clinic.ID] = *clinic

	user.ID = r.db.nextID("users")
	user.ClinicID = clinic.ID
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	stored.Clinic = nil
	r.db.users[user.ID] = stored
	return nil
}

type patientRepository struct{ db *DB }

func (r *patientRepository) ListByClinic(_ context.Context, clinicID uint) ([]model.Patient, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Patient, 0)
	for _, p := range r.db.patients {
		if p.ClinicID == clinicID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *patientRepository) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	list, err := r.ListByClinic(ctx, clinicID)
	return int64(len(list)), err
}

func (r *patientRepository) GetByID(_ context.Context, id uint) (*model.Patient, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	patient.ID = r.db.nextID("patients")
	patient.CreatedAt, patient.UpdatedAt = now, now
	r.db.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Update(_ context.Context, patient *model.Patient) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.patients[patient.ID]; !ok {
		return repository.ErrNotFound
	}
	patient.UpdatedAt = r.db.now()
	r.db.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Delete(_ context.Context, clinicID, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.patients[id]
	if !ok || p.ClinicID != clinicID {
		return repository.ErrNotFound
	}
	delete(r.db.patients, id)
	return nil
}

type appointmentRepository struct{ db *DB }

func (r *appointmentRepository) ListByClinic(_ context.Context, clinicID uint) ([]model.Appointment, error) {
	return r.list(clinicID, time.Time{}, 0), nil
}

func (r *appointmentRepository) ListUpcoming(_ context.Context, clinicID uint, from time.Time, limit int) ([]model.Appointment, error) {
	return r.list(clinicID, from, limit), nil
}

func (r *appointmentRepository) list(clinicID uint, from time.Time, limit int) []model.Appointment {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Appointment, 0)
	for _, a := range r.db.appointments {
		if a.ClinicID == clinicID && !a.Date.Before(from) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *appointmentRepository) GetByID(_ context.Context, id uint) (*model.Appointment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *appointmentRepository) Create(_ context.Context, appointment *model.Appointment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	appointment.ID = r.db.nextID("appointments")
	appointment.CreatedAt, appointment.UpdatedAt = now, now
	r.db.appointments[appointment.ID] = *appointment
	return nil
}

func (r *appointmentRepository) Update(_ context.Context, appointment *model.Appointment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.appointments[appointment.ID]; !ok {
		return repository.ErrNotFound
	}
	appointment.UpdatedAt = r.db.now()
	r.db.appointments[appointment.ID] = *appointment
	return nil
}

func (r *appointmentRepository) Delete(_ context.Context, clinicID, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	a, ok := r.db.appointments[id]
	if !ok || a.ClinicID != clinicID {
		return repository.ErrNotFound
	}
	delete(r.db.appointments, id)
	return nil
}

type equipmentRepository struct{ db *DB }

func (r *equipmentRepository) ListByClinic(_ context.Context, clinicID uint) ([]model.Equipment, error) {
	return r.filter(func(e model.Equipment) bool { return e.ClinicID == clinicID }), nil
}

func (r *equipmentRepository) ListByStatus(_ context.Context, clinicID uint, statuses []string) ([]model.Equipment, error) {
	return r.filter(func(e model.Equipment) bool {
		return e.ClinicID == clinicID && hasStatus(statuses, e.Status)
	}), nil
}

func (r *equipmentRepository) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	list, err := r.ListByClinic(ctx, clinicID)
	return int64(len(list)), err
}

func (r *equipmentRepository) CountByStatusPerClinic(_ context.Context, statuses []string) (map[uint]int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	counts := make(map[uint]int64)
	for _, e := range r.db.equipment {
		if hasStatus(statuses, e.Status) {
			counts[e.ClinicID]++
		}
	}
	return counts, nil
}

func (r *equipmentRepository) filter(keep func(model.Equipment) bool) []model.Equipment {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Equipment, 0)
	for _, e := range r.db.equipment {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *equipmentRepository) GetByID(_ context.Context, id uint) (*model.Equipment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	e, ok := r.db.equipment[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *equipmentRepository) Create(_ context.Context, equipment *model.Equipment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	equipment.ID = r.db.nextID("equipment")
	equipment.CreatedAt, equipment.UpdatedAt = now, now
	r.db.equipment[equipment.ID] = *equipment
	return nil
}

func (r *equipmentRepository) Update(_ context.Context, equipment *model.Equipment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.equipment[equipment.ID]
	if !ok {
		return repository.ErrNotFound
	}
	equipment.ClinicID = stored.ClinicID
	equipment.CreatedAt = stored.CreatedAt
	equipment.UpdatedAt = r.db.now()
	r.db.equipment[equipment.ID] = *equipment
	return nil
}

func (r *equipmentRepository) Delete(_ context.Context, clinicID, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	e, ok := r.db.equipment[id]
	if !ok || e.ClinicID != clinicID {
		return repository.ErrNotFound
	}
	delete(r.db.equipment, id)
	return nil
}

func hasStatus(statuses []string, status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
