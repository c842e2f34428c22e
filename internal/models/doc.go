// Package models defines the persisted domain models for billsplit.
//
//   - Bill: the editable state of a bill (diners, dishes, tax, tip, fees,
//     receipt total). The per-person split is never stored; it is recomputed
//     from the bill with calculator.CalculateBill via Bill.Input.
//   - Dish: one row of a bill, priced either per unit or in total, assigned
//     to diners by index.
//   - User: a registered account that owns saved bills.
//
// Diners are identified by name. Dish assignments refer to diners by their
// position in Bill.Diners, so removing a diner must go through
// Bill.RemoveDiner to keep assignments pointing at the right people.
package models
