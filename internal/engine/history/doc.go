// Package history provides the undo/redo command log for the engine.
//
// Every edit is recorded as a Command: an insert, a delete, or a compound
// wrapping an ordered list of both. Commands are self-describing data —
// they carry the text and positions needed to reverse or replay the edit,
// but they never touch the piece table themselves. The engine façade owns
// both sides and applies a popped command's inverse (undo) or forward
// effect (redo) against its table.
//
// The History type keeps two stacks. Recording a new command pushes it
// onto the undo stack and clears the redo stack; Undo moves the top
// command to the redo stack and returns it; Redo moves it back. Undo or
// redo on an empty stack is not an error — it returns nothing to do.
//
// # Transactions
//
// Multiple edits can be recorded as one atomic undo step:
//
//	h.BeginTransaction("replace selection")
//	h.RecordDelete(old, r)
//	h.RecordInsert(replacement, r.Start)
//	h.EndTransaction()
//
// The two records collapse into a single compound command. Nested
// BeginTransaction calls are flattened into the outermost transaction.
package history
