package panel

import (
	"context"
	"strings"

	"github.com/Mohsinsiddi/cashdapp/internal/notify"
)

// Proposal opens a governance proposal.
type Proposal struct {
	base
	actions     Actions
	description string
	endBlock    uint64
}

// NewProposal creates an empty proposal form.
func NewProposal(a Actions, n notify.Notifier) *Proposal {
	return &Proposal{base: newBase(n), actions: a}
}

// Set stores the proposal text and the block voting closes at.
func (p *Proposal) Set(description string, endBlock uint64) {
	p.description = description
	p.endBlock = endBlock
}

// Submit creates the proposal. currentBlock is the chain head; endBlock must
// lie after it.
func (p *Proposal) Submit(ctx context.Context, currentBlock uint64) (string, error) {
	if strings.TrimSpace(p.description) == "" {
		return "", p.reject(TitleInvalidProposal, "Please enter a proposal description")
	}
	if p.endBlock <= currentBlock {
		return "", p.reject(TitleInvalidProposal, "Voting must end after the current block")
	}
	hash, err := p.actions.CreateProposal(ctx, p.description, p.endBlock)
	if err != nil {
		return hash, err
	}
	p.description, p.endBlock = "", 0
	return hash, nil
}

// Vote casts a vote on a proposal.
type Vote struct {
	base
	actions    Actions
	proposalID uint64
	support    bool
}

// NewVote creates a vote form.
func NewVote(a Actions, n notify.Notifier) *Vote {
	return &Vote{base: newBase(n), actions: a}
}

// Set selects the proposal and the side.
func (p *Vote) Set(proposalID uint64, support bool) {
	p.proposalID = proposalID
	p.support = support
}

// Submit casts the vote.
func (p *Vote) Submit(ctx context.Context) (string, error) {
	return p.actions.CastVote(ctx, p.proposalID, p.support)
}
