package models

// Snapshot - состояние, восстанавливаемое из хранилища при старте
type Snapshot struct {
	Officers []*Officer
	Alerts   []*EmergencyAlert
	Tasks    []*DispatchTask // только активные задачи
}
