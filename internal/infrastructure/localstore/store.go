// Package localstore implementa el almacén local de registros pendientes de
// sincronizar: operaciones capturadas mientras no hubo conexión con la DB.
// Un archivo JSON por tipo de entidad, reescrito completo en cada mutación
// (volúmenes chicos: lo que un local acumula en un corte de conexión).
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entidades con cola de pendientes.
const (
	EntidadTickets  = "tickets"
	EntidadGastos   = "gastos"
	EntidadClientes = "clientes"
	EntidadFeedback = "feedback"
)

// Record un registro pendiente de subir. Payload guarda la entidad serializada.
type Record struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store almacén local por directorio. Seguro para uso concurrente dentro del proceso.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New crea el directorio si no existe y devuelve el almacén.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio local: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(entidad string) string {
	return filepath.Join(s.dir, entidad+".json")
}

// Append encola un payload como pendiente de sincronizar.
func (s *Store) Append(entidad string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar pendiente: %w", err)
	}
	records, err := s.readLocked(entidad)
	if err != nil {
		return err
	}
	records = append(records, Record{
		ID:        uuid.New().String(),
		Payload:   raw,
		CreatedAt: time.Now(),
	})
	return s.writeLocked(entidad, records)
}

// ListPending devuelve los registros pendientes de una entidad, más viejos primero.
func (s *Store) ListPending(entidad string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(entidad)
}

// Remove descarta un pendiente ya subido (o inválido).
func (s *Store) Remove(entidad, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readLocked(entidad)
	if err != nil {
		return err
	}
	out := records[:0]
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return s.writeLocked(entidad, out)
}

// Clear vacía la cola de una entidad.
func (s *Store) Clear(entidad string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(entidad, nil)
}

func (s *Store) readLocked(entidad string) ([]Record, error) {
	data, err := os.ReadFile(s.path(entidad))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer pendientes de %s: %w", entidad, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decodificar pendientes de %s: %w", entidad, err)
	}
	return records, nil
}

func (s *Store) writeLocked(entidad string, records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar pendientes de %s: %w", entidad, err)
	}
	// Escritura a archivo temporal + rename para no dejar un JSON a medias.
	tmp := s.path(entidad) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir pendientes de %s: %w", entidad, err)
	}
	if err := os.Rename(tmp, s.path(entidad)); err != nil {
		return fmt.Errorf("renombrar pendientes de %s: %w", entidad, err)
	}
	return nil
}
