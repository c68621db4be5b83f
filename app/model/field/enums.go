package field

import "golang.org/x/exp/slices"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "PLANNING"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

func (s ProjectStatus) IsValid() bool {
	return slices.Contains([]ProjectStatus{ProjectPlanning, ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled}, s)
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketReview     TicketStatus = "REVIEW"
	TicketTesting    TicketStatus = "TESTING"
	TicketDone       TicketStatus = "DONE"
	TicketClosed     TicketStatus = "CLOSED"
	TicketBlocked    TicketStatus = "BLOCKED"
)

func (s TicketStatus) IsValid() bool {
	return slices.Contains([]TicketStatus{TicketOpen, TicketInProgress, TicketReview, TicketTesting, TicketDone, TicketClosed, TicketBlocked}, s)
}

// TaskStatus 只有 complete 操作强制 ->DONE 的单向流转，其余由 Update 自由修改
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskReview     TaskStatus = "REVIEW"
	TaskDone       TaskStatus = "DONE"
)

func (s TaskStatus) IsValid() bool {
	return slices.Contains([]TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}, s)
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) IsValid() bool {
	return slices.Contains([]Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}, p)
}

type TicketParticipation string

const (
	TicketAssignee TicketParticipation = "ASSIGNEE"
	TicketReviewer TicketParticipation = "REVIEWER"
	TicketWatcher  TicketParticipation = "WATCHER"
)

func (p TicketParticipation) IsValid() bool {
	return slices.Contains([]TicketParticipation{TicketAssignee, TicketReviewer, TicketWatcher}, p)
}

type TaskParticipation string

const (
	TaskAssignee TaskParticipation = "ASSIGNEE"
	TaskReviewer TaskParticipation = "REVIEWER"
)

func (p TaskParticipation) IsValid() bool {
	return slices.Contains([]TaskParticipation{TaskAssignee, TaskReviewer}, p)
}

// TargetType 评论、附件的多态目标
type TargetType string

const (
	TargetProject TargetType = "PROJECT"
	TargetTicket  TargetType = "TICKET"
	TargetTask    TargetType = "TASK"
)

func (t TargetType) IsValid() bool {
	return slices.Contains([]TargetType{TargetProject, TargetTicket, TargetTask}, t)
}

type NotificationType string

const (
	NotifyTicketCreated   NotificationType = "TICKET_CREATED"
	NotifyTicketUpdated   NotificationType = "TICKET_UPDATED"
	NotifyCommentAdded    NotificationType = "COMMENT_ADDED"
	NotifyTicketAssigned  NotificationType = "TICKET_ASSIGNED"
	NotifyDueDateReminder NotificationType = "DUE_DATE_REMINDER"
	NotifyMention         NotificationType = "MENTION"
)

func (t NotificationType) IsValid() bool {
	return slices.Contains([]NotificationType{
		NotifyTicketCreated, NotifyTicketUpdated, NotifyCommentAdded,
		NotifyTicketAssigned, NotifyDueDateReminder, NotifyMention,
	}, t)
}
