package iocache

import (
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// SaveAssessment implements the HistoryStore interface.
func (m *MockHistoryStore) SaveAssessment(a *schema.AIReadinessAssessment) (int64, error) {
	args := m.Called(a)
	return args.Get(0).(int64), args.Error(1)
}

// LatestAssessment implements the HistoryStore interface.
func (m *MockHistoryStore) LatestAssessment(repoPath string) (*schema.AIReadinessAssessment, error) {
	args := m.Called(repoPath)
	a, _ := args.Get(0).(*schema.AIReadinessAssessment)
	return a, args.Error(1)
}

// ListAssessments implements the HistoryStore interface.
func (m *MockHistoryStore) ListAssessments(repoPath string, limit int) ([]schema.AssessmentRecord, error) {
	args := m.Called(repoPath, limit)
	records, _ := args.Get(0).([]schema.AssessmentRecord)
	return records, args.Error(1)
}

// GetAllAssessmentRecords implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllAssessmentRecords() ([]schema.AssessmentRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.AssessmentRecord)
	return records, args.Error(1)
}

// GetAllDimensionScoreRecords implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllDimensionScoreRecords() ([]schema.DimensionScoreRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.DimensionScoreRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
