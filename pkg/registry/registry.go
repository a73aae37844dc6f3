// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"intel-search-workers/internal/common/validation"
)

var ErrActivityNotFound = errors.New("activity not found")

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry with LastUpdated refreshed.
func (r *ActivityRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (r *ActivityRegistry) Find(taskType string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: task type %s", ErrActivityNotFound, taskType)
}

func (r *ActivityRegistry) FindByID(id string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %s", ErrActivityNotFound, id)
}

// Add appends a new activity; ids and task types must stay unique.
func (r *ActivityRegistry) Add(a Activity) error {
	if _, err := r.FindByID(a.ID); err == nil {
		return fmt.Errorf("activity %s already exists", a.ID)
	}
	if _, err := r.Find(a.TaskType); err == nil {
		return fmt.Errorf("task type %s already registered", a.TaskType)
	}
	r.Activities = append(r.Activities, a)
	return nil
}

// SetStatus updates an activity's implementation status.
func (r *ActivityRegistry) SetStatus(id, status string) error {
	if !implementationStatuses[status] {
		return fmt.Errorf("invalid status %q", status)
	}
	a, err := r.FindByID(id)
	if err != nil {
		return err
	}
	a.ImplementationStatus = status
	return nil
}

// Validate returns every problem found, joined into one error.
func (r *ActivityRegistry) Validate() error {
	var problems []string
	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)

	for i, a := range r.Activities {
		where := fmt.Sprintf("activities[%d]", i)
		if a.ID != "" {
			where = a.ID
		}

		switch {
		case a.ID == "":
			problems = append(problems, where+": id is required")
		case ids[a.ID]:
			problems = append(problems, where+": duplicate id")
		default:
			if err := validation.ValidateActivityNaming(a.ID); err != nil {
				problems = append(problems, where+": "+err.Error())
			}
		}
		ids[a.ID] = true

		switch {
		case a.TaskType == "":
			problems = append(problems, where+": taskType is required")
		case taskTypes[a.TaskType]:
			problems = append(problems, where+": duplicate taskType "+a.TaskType)
		}
		taskTypes[a.TaskType] = true

		if a.DisplayName == "" {
			problems = append(problems, where+": displayName is required")
		}
		if !implementationStatuses[a.ImplementationStatus] {
			problems = append(problems, fmt.Sprintf("%s: invalid implementationStatus %q", where, a.ImplementationStatus))
		}
		if _, err := a.TimeoutDuration(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", where, a.Timeout))
		}
		if a.Retries < 0 {
			problems = append(problems, where+": retries must not be negative")
		}
		if len(a.InputSchema) > 0 {
			if _, err := validation.CompileSchemaMap(a.InputSchema); err != nil {
				problems = append(problems, where+": inputSchema: "+err.Error())
			}
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// CheckInput validates raw job variables against the activity's input schema.
// Activities without a schema accept anything.
func (r *ActivityRegistry) CheckInput(taskType, variables string) (*validation.ValidationResult, error) {
	a, err := r.Find(taskType)
	if err != nil {
		return nil, err
	}
	if len(a.InputSchema) == 0 {
		return &validation.ValidationResult{Valid: true}, nil
	}
	schema, err := validation.CompileSchemaMap(a.InputSchema)
	if err != nil {
		return nil, err
	}
	return schema.ValidateJSON(variables), nil
}

// Missing returns the task types not present in the registry.
func (r *ActivityRegistry) Missing(taskTypes []string) []string {
	var missing []string
	for _, tt := range taskTypes {
		if _, err := r.Find(tt); err != nil {
			missing = append(missing, tt)
		}
	}
	return missing
}
