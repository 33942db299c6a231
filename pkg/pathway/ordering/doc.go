// Package ordering derives the linear synthesis order of a pathway's
// reactions.
//
// [Order] walks backward from a final product to the starting substrates,
// collecting reactions, then reverses the result. It succeeds only when a
// single walk covers every reaction; branching pathways are reported as
// AMBIGUOUS_OR_NO_FULL_ORDER instead of being guessed.
//
// [Steps] turns an order into per-reaction participant lists: structures to
// draw along the backbone and cofactor labels to print beside each arrow.
package ordering
