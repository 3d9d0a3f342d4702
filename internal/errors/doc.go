// Package errors provides structured errors for the balance engine.
//
// Every failure the engine reports carries a Code so callers can decide how to
// surface it without string matching:
//   - NotFound: unknown item, slot, archetype, loot table, session, or an
//     inventory index that points past the owned items
//   - FailedPrecondition: the request is well formed but the current state
//     forbids it (unequip on an empty slot, battle with a defeated player)
//   - InvalidArgument: malformed input or configuration
//   - AlreadyExists: duplicate keys in catalogs and repositories
//   - Internal: storage and encoding failures
//
// # Basic Usage
//
//	err := errors.NotFoundf("item %s not in catalog", name)
//	err := errors.FailedPrecondition("nothing equipped in slot").
//	    WithMeta("slot", slot)
//
// Wrapping keeps the original code:
//
//	if err := repo.Create(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to store battle report")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // unknown item
//	}
//
// # Validation Errors
//
// Constructor configs validate with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Roller == nil {
//	    vb.RequiredField("Roller")
//	}
//	return vb.Build()
package errors
