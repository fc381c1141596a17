// Package config assembles a calculus.Config and an obslog.Logger behind a
// functional-options constructor, following the teacher repository's
// BuilderOption contract: option constructors validate and panic on
// meaningless input, while the algorithms they configure never panic
// themselves.
package config
