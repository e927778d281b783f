// default_chacha20.go - Build time default primitive (ChaCha20).
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

//go:build bike_chacha20 && !bike_shake

package prf

// Default is the primitive used unless a caller asks for another one.
const Default = ChaCha20
