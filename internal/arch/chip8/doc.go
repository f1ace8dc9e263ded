// Package chip8 implements the decoder tree, disassembler and rewriter of the
// CHIP-8 virtual machine.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x1FF: Interpreter area, holds the font sprites
//   - ProgramStart-MaxAddress: User program and data area
//
// # Instruction Set
//
// All instructions are 16 bit big endian words. Sixteen 8 bit registers V0
// to VF are available, VF is used as carry, borrow and collision flag. The
// 16 bit register I addresses memory, DT and ST are the delay and sound
// timers.
//
// Skip instructions are lifted as conditional branches over the following
// instruction. Interpreter services like drawing, keyboard input and random
// numbers are lifted as intrinsic calls.
//
// Shift instructions shift Vx in place, the load and store register
// instructions leave I unmodified. The machine language subroutine call
// 0nnn is recognized but not lifted.
package chip8
