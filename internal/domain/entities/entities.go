package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Enums and types
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole resolves a role name case-insensitively.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(value))
	if !role.IsValid() {
		return "", Businessf("can't parse role: %s, valid values: %s, %s", value, RoleUser, RoleAdmin)
	}
	return role, nil
}

type ProjectStatus string

const (
	ProjectStatusInitiated  ProjectStatus = "INITIATED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectStatusInitiated, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Color is the fixed label palette.
type Color string

const (
	ColorRed     Color = "RED"
	ColorGreen   Color = "GREEN"
	ColorBlue    Color = "BLUE"
	ColorYellow  Color = "YELLOW"
	ColorOrange  Color = "ORANGE"
	ColorPurple  Color = "PURPLE"
	ColorPink    Color = "PINK"
	ColorBrown   Color = "BROWN"
	ColorBlack   Color = "BLACK"
	ColorWhite   Color = "WHITE"
	ColorGray    Color = "GRAY"
	ColorCyan    Color = "CYAN"
	ColorMagenta Color = "MAGENTA"
	ColorLime    Color = "LIME"
	ColorNavy    Color = "NAVY"
)

var colorHexCodes = map[Color]string{
	ColorRed:     "#FF0000",
	ColorGreen:   "#00FF00",
	ColorBlue:    "#0000FF",
	ColorYellow:  "#FFFF00",
	ColorOrange:  "#FFA500",
	ColorPurple:  "#800080",
	ColorPink:    "#FFC0CB",
	ColorBrown:   "#A52A2A",
	ColorBlack:   "#000000",
	ColorWhite:   "#FFFFFF",
	ColorGray:    "#808080",
	ColorCyan:    "#00FFFF",
	ColorMagenta: "#FF00FF",
	ColorLime:    "#00FF00",
	ColorNavy:    "#000080",
}

// AllColors lists the palette in declaration order.
var AllColors = []Color{
	ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorOrange,
	ColorPurple, ColorPink, ColorBrown, ColorBlack, ColorWhite,
	ColorGray, ColorCyan, ColorMagenta, ColorLime, ColorNavy,
}

func (c Color) IsValid() bool {
	_, ok := colorHexCodes[c]
	return ok
}

// Hex returns the color's hex code, empty for unknown colors.
func (c Color) Hex() string {
	return colorHexCodes[c]
}

// ParseColor resolves a color name case-insensitively. The error message
// lists the legal set so API callers can correct themselves.
func ParseColor(value string) (Color, error) {
	color := Color(strings.ToUpper(value))
	if color.IsValid() {
		return color, nil
	}
	names := make([]string, len(AllColors))
	for i, c := range AllColors {
		names[i] = string(c)
	}
	return "", Businessf("invalid color value, please enter valid value: %s", strings.Join(names, ", "))
}

// User represents an account in the directory.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	IsDeleted    bool      `json:"-" db:"is_deleted"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Project groups tasks and carries the membership sets.
// Invariant: MainUserID ∈ AdministratorIDs ⊆ MemberIDs.
type Project struct {
	ID               int64         `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	Description      string        `json:"description" db:"description"`
	StartDate        time.Time     `json:"start_date" db:"start_date"`
	EndDate          time.Time     `json:"end_date" db:"end_date"`
	Status           ProjectStatus `json:"status" db:"status"`
	MainUserID       uuid.UUID     `json:"main_user_id" db:"main_user_id"`
	AdministratorIDs []uuid.UUID   `json:"administrator_ids"`
	MemberIDs        []uuid.UUID   `json:"member_ids"`
	IsDeleted        bool          `json:"-" db:"is_deleted"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// IsMember reports whether the user belongs to the project.
func (p *Project) IsMember(userID uuid.UUID) bool {
	return containsID(p.MemberIDs, userID)
}

// IsAdministrator reports whether the user may mutate project data.
func (p *Project) IsAdministrator(userID uuid.UUID) bool {
	return containsID(p.AdministratorIDs, userID)
}

// ContainsDate reports whether d falls inside [StartDate, EndDate].
func (p *Project) ContainsDate(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// AddAdministrator puts the user into both sets, keeping the subset chain.
func (p *Project) AddAdministrator(userID uuid.UUID) {
	if !containsID(p.AdministratorIDs, userID) {
		p.AdministratorIDs = append(p.AdministratorIDs, userID)
	}
	p.AddMember(userID)
}

// AddMember puts the user into the member set if absent.
func (p *Project) AddMember(userID uuid.UUID) {
	if !containsID(p.MemberIDs, userID) {
		p.MemberIDs = append(p.MemberIDs, userID)
	}
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Task belongs to exactly one project.
type Task struct {
	ID          int64      `json:"id" db:"id"`
	ProjectID   int64      `json:"project_id" db:"project_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Status      TaskStatus `json:"status" db:"status"`
	DueDate     time.Time  `json:"due_date" db:"due_date"`
	AssigneeID  *uuid.UUID `json:"assignee_id" db:"assignee_id"`
	IsDeleted   bool       `json:"-" db:"is_deleted"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Label is a colored tag. A nil ProjectID marks a shared default label,
// which is immutable and undeletable.
type Label struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Color     Color  `json:"color" db:"color"`
	ProjectID *int64 `json:"project_id" db:"project_id"`
	IsDeleted bool   `json:"-" db:"is_deleted"`
}

// IsDefault reports whether the label belongs to the shared immutable pool.
func (l *Label) IsDefault() bool {
	return l.ProjectID == nil
}

// Comment is free text attached to a task by its author.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	TaskID    int64     `json:"task_id" db:"task_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
}

// Attachment maps a task to a file held in external object storage.
type Attachment struct {
	ID         int64     `json:"id" db:"id"`
	TaskID     int64     `json:"task_id" db:"task_id"`
	ObjectID   string    `json:"object_id" db:"object_id"`
	Filename   string    `json:"filename" db:"filename"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// BotChat links an application user to an external chat session.
type BotChat struct {
	ID        int64     `json:"id" db:"id"`
	ChatID    int64     `json:"chat_id" db:"chat_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	IsDeleted bool      `json:"-" db:"is_deleted"`
}
