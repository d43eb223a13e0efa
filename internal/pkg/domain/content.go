package domain

import (
	"time"

	"github.com/google/uuid"
)

type ObjectType string

const (
	TypeCommunity  ObjectType = "community"
	TypeCollection ObjectType = "collection"
	TypeItem       ObjectType = "item"
	TypeBundle     ObjectType = "bundle"
	TypeBitstream  ObjectType = "bitstream"
	TypeEPerson    ObjectType = "eperson"
	TypeGroup      ObjectType = "group"
)

// DSO holds what every repository object has in common.
type DSO struct {
	ID       uuid.UUID
	Handle   string
	Metadata Metadata
}

func NewDSO() DSO {
	return DSO{ID: uuid.New(), Metadata: Metadata{}}
}

// Name is the dc.title of the object.
func (d DSO) Name() string {
	return d.Metadata.First("dc.title")
}

type Community struct {
	DSO
	ParentID *uuid.UUID
}

type Collection struct {
	DSO
	CommunityID       uuid.UUID
	SubmittersGroupID *uuid.UUID
	WorkflowGroupID   *uuid.UUID
}

type Item struct {
	DSO
	OwningCollectionID uuid.UUID
	SubmitterID        *uuid.UUID
	InArchive          bool
	Discoverable       bool
	Withdrawn          bool
	LastModified       time.Time
	EntityType         string
}

// IsReadableBy reports if eperson may read the item. Archived items are
// public, anything else is visible to its submitter and to administrators.
// A nil eperson is an anonymous reader.
func (i Item) IsReadableBy(eperson *EPerson, admin bool) bool {
	if i.InArchive && !i.Withdrawn {
		return true
	}
	if admin {
		return true
	}
	return eperson != nil && i.SubmitterID != nil && *i.SubmitterID == eperson.ID
}

const BundleOriginal string = "ORIGINAL"

type Bundle struct {
	DSO
	ItemID uuid.UUID
}

type Bitstream struct {
	DSO
	BundleID          uuid.UUID
	SizeBytes         int64
	Checksum          string
	ChecksumAlgorithm string
	Format            string
	SequenceID        int
	InternalID        string
}

// WorkspaceItem is an item that is still being submitted.
type WorkspaceItem struct {
	ID              int
	ItemID          uuid.UUID
	CollectionID    uuid.UUID
	SubmitterID     uuid.UUID
	MultipleTitles  bool
	PublishedBefore bool
	MultipleFiles   bool
	StageReached    int
}

type WorkflowState int

const (
	WorkflowStepOnePool WorkflowState = iota + 1
	WorkflowStepOne
	WorkflowStepTwoPool
	WorkflowStepTwo
	WorkflowStepThreePool
	WorkflowStepThree
)

// WorkflowItem is an item awaiting review before it enters the archive.
type WorkflowItem struct {
	ID           int
	ItemID       uuid.UUID
	CollectionID uuid.UUID
	SubmitterID  uuid.UUID
	State        WorkflowState
}
