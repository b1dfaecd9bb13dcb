// Package models defines the core domain models for tripsplit.
//
// # Models
//
//   - Group: members collaborating on one or more trip plans
//   - Plan: a single trip itinerary owned by a group
//   - Expense: a monetary outlay on a plan with a payer and a split mapping
//   - Note: free-form text attached to a plan
//   - Settlement: a payment between two members clearing part of a debt
//   - User: a registered account; its ID is the member identifier
//
// # Design Principles
//
// 1. **Opaque member IDs**: members are referenced by user ID strings; display
// labels live on the group (MemberDetails) and may be missing.
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships.
// 3. **Plans own their children**: notes, expenses and settlements are deleted
// together with their plan.
package models
