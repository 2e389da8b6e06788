/*
Package vcd parses Value Change Dump waveform files and compares them
signal by signal, timestamp by timestamp, reporting every point where two
recorded traces disagree.

It covers the VCD header grammar ($scope/$var/$upscope/$timescale/
$enddefinitions) and value-change stream (scalar, vector and real value
changes), a polymorphic Variable family (Scalar, Vector and Alias), and a
Comparator that structurally matches two files' scope trees before walking
their value-change streams in lockstep. A $var name is split on at most one
bracket suffix (a single [n] index or an [l:r] range); chained
multi-dimensional names such as mem[3][7:0] are not split into nested
vectors.

The comparison is purely structural: vcd never infers register-transfer-level
meaning from a signal's name or type, only from the values actually recorded
against it.
*/
package vcd
