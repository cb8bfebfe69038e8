/*
Package machine implements the core of a cycle-accurate emulator for an
8-bit machine: a CPU fetch-decode-execute engine driven by a microcode
table, coupled to a shared bus fabric (Motherboard), a flat 16 MiB RAM,
and an I/O dispatcher (IOD) that multiplexes peripheral interrupts and
port accesses onto the buses.

The CPU, the IOD, the RAM and every plugged Device each advance one
simulated clock cycle per call to Tick, in that fixed order. All
inter-component signalling goes through the Motherboard; no component
calls another directly.

The package is a library: windowing, rasterisation, the main-loop driver
and concrete peripherals are external collaborators. Two reference
peripherals (keyboard, screen) live in the sibling package `devices`.
*/
package machine
