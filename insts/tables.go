package insts

// Decode tables compatible with the 8086tiny BIOS.

// opcodeTable holds the decode entry for every opcode byte.
var opcodeTable = [256]Entry{
	0x00: {OpALURM, 0, FlagsArith, 2, 0, 1},        // ADD Eb,Gb
	0x01: {OpALURM, 0, FlagsArith, 2, 0, 1},        // ADD Ev,Gv
	0x02: {OpALURM, 0, FlagsArith, 2, 0, 1},        // ADD Gb,Eb
	0x03: {OpALURM, 0, FlagsArith, 2, 0, 1},        // ADD Gv,Ev
	0x04: {OpALUAccImm, 0, FlagsArith, 1, 1, 0},    // ADD AL,Ib
	0x05: {OpALUAccImm, 0, FlagsArith, 1, 1, 0},    // ADD AX,Iv
	0x06: {OpPushSeg, 8, FlagsNone, 1, 0, 0},       // PUSH ES
	0x07: {OpPopSeg, 8, FlagsNone, 1, 0, 0},        // POP ES
	0x08: {OpALURM, 1, FlagsLogic, 2, 0, 1},        // OR Eb,Gb
	0x09: {OpALURM, 1, FlagsLogic, 2, 0, 1},        // OR Ev,Gv
	0x0A: {OpALURM, 1, FlagsLogic, 2, 0, 1},        // OR Gb,Eb
	0x0B: {OpALURM, 1, FlagsLogic, 2, 0, 1},        // OR Gv,Ev
	0x0C: {OpALUAccImm, 1, FlagsLogic, 1, 1, 0},    // OR AL,Ib
	0x0D: {OpALUAccImm, 1, FlagsLogic, 1, 1, 0},    // OR AX,Iv
	0x0E: {OpPushSeg, 9, FlagsNone, 1, 0, 0},       // PUSH CS
	0x0F: {OpEscape, 36, FlagsNone, 2, 0, 0},       // emulator escape
	0x10: {OpALURM, 2, FlagsSZP, 2, 0, 1},          // ADC Eb,Gb
	0x11: {OpALURM, 2, FlagsSZP, 2, 0, 1},          // ADC Ev,Gv
	0x12: {OpALURM, 2, FlagsSZP, 2, 0, 1},          // ADC Gb,Eb
	0x13: {OpALURM, 2, FlagsSZP, 2, 0, 1},          // ADC Gv,Ev
	0x14: {OpALUAccImm, 2, FlagsSZP, 1, 1, 0},      // ADC AL,Ib
	0x15: {OpALUAccImm, 2, FlagsSZP, 1, 1, 0},      // ADC AX,Iv
	0x16: {OpPushSeg, 10, FlagsNone, 1, 0, 0},      // PUSH SS
	0x17: {OpPopSeg, 10, FlagsNone, 1, 0, 0},       // POP SS
	0x18: {OpALURM, 3, FlagsSZP, 2, 0, 1},          // SBB Eb,Gb
	0x19: {OpALURM, 3, FlagsSZP, 2, 0, 1},          // SBB Ev,Gv
	0x1A: {OpALURM, 3, FlagsSZP, 2, 0, 1},          // SBB Gb,Eb
	0x1B: {OpALURM, 3, FlagsSZP, 2, 0, 1},          // SBB Gv,Ev
	0x1C: {OpALUAccImm, 3, FlagsSZP, 1, 1, 0},      // SBB AL,Ib
	0x1D: {OpALUAccImm, 3, FlagsSZP, 1, 1, 0},      // SBB AX,Iv
	0x1E: {OpPushSeg, 11, FlagsNone, 1, 0, 0},      // PUSH DS
	0x1F: {OpPopSeg, 11, FlagsNone, 1, 0, 0},       // POP DS
	0x20: {OpALURM, 4, FlagsLogic, 2, 0, 1},        // AND Eb,Gb
	0x21: {OpALURM, 4, FlagsLogic, 2, 0, 1},        // AND Ev,Gv
	0x22: {OpALURM, 4, FlagsLogic, 2, 0, 1},        // AND Gb,Eb
	0x23: {OpALURM, 4, FlagsLogic, 2, 0, 1},        // AND Gv,Ev
	0x24: {OpALUAccImm, 4, FlagsLogic, 1, 1, 0},    // AND AL,Ib
	0x25: {OpALUAccImm, 4, FlagsLogic, 1, 1, 0},    // AND AX,Iv
	0x26: {OpSegOverride, 8, FlagsNone, 1, 0, 0},   // ES:
	0x27: {OpDecimalAdjust, 0, FlagsSZP, 1, 0, 0},  // DAA
	0x28: {OpALURM, 5, FlagsArith, 2, 0, 1},        // SUB Eb,Gb
	0x29: {OpALURM, 5, FlagsArith, 2, 0, 1},        // SUB Ev,Gv
	0x2A: {OpALURM, 5, FlagsArith, 2, 0, 1},        // SUB Gb,Eb
	0x2B: {OpALURM, 5, FlagsArith, 2, 0, 1},        // SUB Gv,Ev
	0x2C: {OpALUAccImm, 5, FlagsArith, 1, 1, 0},    // SUB AL,Ib
	0x2D: {OpALUAccImm, 5, FlagsArith, 1, 1, 0},    // SUB AX,Iv
	0x2E: {OpSegOverride, 9, FlagsNone, 1, 0, 0},   // CS:
	0x2F: {OpDecimalAdjust, 1, FlagsSZP, 1, 0, 0},  // DAS
	0x30: {OpALURM, 6, FlagsLogic, 2, 0, 1},        // XOR Eb,Gb
	0x31: {OpALURM, 6, FlagsLogic, 2, 0, 1},        // XOR Ev,Gv
	0x32: {OpALURM, 6, FlagsLogic, 2, 0, 1},        // XOR Gb,Eb
	0x33: {OpALURM, 6, FlagsLogic, 2, 0, 1},        // XOR Gv,Ev
	0x34: {OpALUAccImm, 6, FlagsLogic, 1, 1, 0},    // XOR AL,Ib
	0x35: {OpALUAccImm, 6, FlagsLogic, 1, 1, 0},    // XOR AX,Iv
	0x36: {OpSegOverride, 10, FlagsNone, 1, 0, 0},  // SS:
	0x37: {OpASCIIAdjust, 2, FlagsSZP, 1, 0, 0},    // AAA
	0x38: {OpALURM, 7, FlagsArith, 2, 0, 1},        // CMP Eb,Gb
	0x39: {OpALURM, 7, FlagsArith, 2, 0, 1},        // CMP Ev,Gv
	0x3A: {OpALURM, 7, FlagsArith, 2, 0, 1},        // CMP Gb,Eb
	0x3B: {OpALURM, 7, FlagsArith, 2, 0, 1},        // CMP Gv,Ev
	0x3C: {OpALUAccImm, 7, FlagsArith, 1, 1, 0},    // CMP AL,Ib
	0x3D: {OpALUAccImm, 7, FlagsArith, 1, 1, 0},    // CMP AX,Iv
	0x3E: {OpSegOverride, 11, FlagsNone, 1, 0, 0},  // DS:
	0x3F: {OpASCIIAdjust, 0, FlagsSZP, 1, 0, 0},    // AAS
	0x40: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC AX
	0x41: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC CX
	0x42: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC DX
	0x43: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC BX
	0x44: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC SP
	0x45: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC BP
	0x46: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC SI
	0x47: {OpIncDecReg, 0, FlagsSZP, 1, 0, 0},      // INC DI
	0x48: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC AX
	0x49: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC CX
	0x4A: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC DX
	0x4B: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC BX
	0x4C: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC SP
	0x4D: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC BP
	0x4E: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC SI
	0x4F: {OpIncDecReg, 1, FlagsSZP, 1, 0, 0},      // DEC DI
	0x50: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH AX
	0x51: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH CX
	0x52: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH DX
	0x53: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH BX
	0x54: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH SP
	0x55: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH BP
	0x56: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH SI
	0x57: {OpPushReg, 0, FlagsNone, 1, 0, 0},       // PUSH DI
	0x58: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP AX
	0x59: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP CX
	0x5A: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP DX
	0x5B: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP BX
	0x5C: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP SP
	0x5D: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP BP
	0x5E: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP SI
	0x5F: {OpPopReg, 0, FlagsNone, 1, 0, 0},        // POP DI
	0x60: {OpPusha, 0, FlagsNone, 1, 0, 0},         // PUSHA
	0x61: {OpPopa, 0, FlagsNone, 1, 0, 0},          // POPA
	0x62: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // (undefined)
	0x63: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // (undefined)
	0x64: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // (undefined)
	0x65: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // (undefined)
	0x66: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // (undefined)
	0x67: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // (undefined)
	0x68: {OpPushImm, 0, FlagsNone, 1, 1, 0},       // PUSH Iv
	0x69: {OpPushImm, 0, FlagsNone, 1, 1, 0},       // IMUL Gv,Ev,Iv
	0x6A: {OpPushImm, 0, FlagsNone, 1, 1, 0},       // PUSH Ib
	0x6B: {OpPushImm, 0, FlagsNone, 1, 1, 0},       // IMUL Gv,Ev,Ib
	0x6C: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // INSB
	0x6D: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // INSW
	0x6E: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // OUTSB
	0x6F: {OpUndefined, 21, FlagsNone, 1, 0, 0},    // OUTSW
	0x70: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JO
	0x71: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JNO
	0x72: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JB
	0x73: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JAE
	0x74: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JE
	0x75: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JNE
	0x76: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JBE
	0x77: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JA
	0x78: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JS
	0x79: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JNS
	0x7A: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JP
	0x7B: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JNP
	0x7C: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JL
	0x7D: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JGE
	0x7E: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JLE
	0x7F: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // JG
	0x80: {OpALURMImm, 0, FlagsSZP, 2, 1, 1},       // grp1 Eb,Ib
	0x81: {OpALURMImm, 0, FlagsSZP, 2, 1, 1},       // grp1 Ev,Iv
	0x82: {OpALURMImm, 0, FlagsSZP, 2, 1, 1},       // grp1 Eb,Ib
	0x83: {OpALURMImm, 0, FlagsSZP, 2, 1, 1},       // grp1 Ev,Ib
	0x84: {OpTestRM, 0, FlagsLogic, 2, 0, 1},       // TEST Eb,Gb
	0x85: {OpTestRM, 0, FlagsLogic, 2, 0, 1},       // TEST Ev,Gv
	0x86: {OpXchgRM, 0, FlagsNone, 2, 0, 1},        // XCHG Eb,Gb
	0x87: {OpXchgRM, 0, FlagsNone, 2, 0, 1},        // XCHG Ev,Gv
	0x88: {OpALURM, 8, FlagsNone, 2, 0, 1},         // MOV Eb,Gb
	0x89: {OpALURM, 8, FlagsNone, 2, 0, 1},         // MOV Ev,Gv
	0x8A: {OpALURM, 8, FlagsNone, 2, 0, 1},         // MOV Gb,Eb
	0x8B: {OpALURM, 8, FlagsNone, 2, 0, 1},         // MOV Gv,Ev
	0x8C: {OpMovSegLea, 12, FlagsNone, 2, 0, 1},    // MOV Ew,Sw
	0x8D: {OpMovSegLea, 12, FlagsNone, 2, 0, 1},    // LEA Gv,M
	0x8E: {OpMovSegLea, 12, FlagsNone, 2, 0, 1},    // MOV Sw,Ew
	0x8F: {OpMovSegLea, 12, FlagsNone, 2, 0, 1},    // POP Ev
	0x90: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // NOP
	0x91: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,CX
	0x92: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,DX
	0x93: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,BX
	0x94: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,SP
	0x95: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,BP
	0x96: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,SI
	0x97: {OpXchgAcc, 0, FlagsNone, 1, 0, 0},       // XCHG AX,DI
	0x98: {OpCBW, 0, FlagsNone, 1, 0, 0},           // CBW
	0x99: {OpCWD, 0, FlagsNone, 1, 0, 0},           // CWD
	0x9A: {OpCallFar, 0, FlagsNone, 0, 0, 0},       // CALL Ap
	0x9B: {OpNop, 0, FlagsNone, 1, 0, 0},           // WAIT
	0x9C: {OpPushf, 0, FlagsNone, 1, 0, 0},         // PUSHF
	0x9D: {OpPopf, 0, FlagsNone, 1, 0, 0},          // POPF
	0x9E: {OpSahf, 255, FlagsNone, 1, 0, 0},        // SAHF
	0x9F: {OpLahf, 0, FlagsNone, 1, 0, 0},          // LAHF
	0xA0: {OpMovAccMem, 0, FlagsNone, 3, 0, 0},     // MOV AL,Ob
	0xA1: {OpMovAccMem, 0, FlagsNone, 3, 0, 0},     // MOV AX,Ov
	0xA2: {OpMovAccMem, 0, FlagsNone, 3, 0, 0},     // MOV Ob,AL
	0xA3: {OpMovAccMem, 0, FlagsNone, 3, 0, 0},     // MOV Ov,AX
	0xA4: {OpStringMove, 0, FlagsNone, 1, 0, 0},    // MOVSB
	0xA5: {OpStringMove, 0, FlagsNone, 1, 0, 0},    // MOVSW
	0xA6: {OpStringCompare, 0, FlagsNone, 1, 0, 0}, // CMPSB
	0xA7: {OpStringCompare, 0, FlagsNone, 1, 0, 0}, // CMPSW
	0xA8: {OpTestAccImm, 0, FlagsLogic, 1, 1, 0},   // TEST AL,Ib
	0xA9: {OpTestAccImm, 0, FlagsLogic, 1, 1, 0},   // TEST AX,Iv
	0xAA: {OpStringMove, 1, FlagsNone, 1, 0, 0},    // STOSB
	0xAB: {OpStringMove, 1, FlagsNone, 1, 0, 0},    // STOSW
	0xAC: {OpStringMove, 2, FlagsNone, 1, 0, 0},    // LODSB
	0xAD: {OpStringMove, 2, FlagsNone, 1, 0, 0},    // LODSW
	0xAE: {OpStringCompare, 1, FlagsNone, 1, 0, 0}, // SCASB
	0xAF: {OpStringCompare, 1, FlagsNone, 1, 0, 0}, // SCASW
	0xB0: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV AL,Ib
	0xB1: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV CL,Ib
	0xB2: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV DL,Ib
	0xB3: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV BL,Ib
	0xB4: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV AH,Ib
	0xB5: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV CH,Ib
	0xB6: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV DH,Ib
	0xB7: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV BH,Ib
	0xB8: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV AX,Iv
	0xB9: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV CX,Iv
	0xBA: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV DX,Iv
	0xBB: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV BX,Iv
	0xBC: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV SP,Iv
	0xBD: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV BP,Iv
	0xBE: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV SI,Iv
	0xBF: {OpMovRegImm, 0, FlagsNone, 1, 1, 0},     // MOV DI,Iv
	0xC0: {OpShiftRotate, 1, FlagsNone, 3, 0, 1},   // grp2 Eb,Ib
	0xC1: {OpShiftRotate, 1, FlagsNone, 3, 0, 1},   // grp2 Ev,Ib
	0xC2: {OpReturn, 0, FlagsNone, 0, 0, 0},        // RET Iw
	0xC3: {OpReturn, 0, FlagsNone, 0, 0, 0},        // RET
	0xC4: {OpLoadFarPtr, 16, FlagsNone, 2, 0, 1},   // LES Gv,Mp
	0xC5: {OpLoadFarPtr, 22, FlagsNone, 2, 0, 1},   // LDS Gv,Mp
	0xC6: {OpMovRMImm, 0, FlagsNone, 2, 1, 1},      // MOV Eb,Ib
	0xC7: {OpMovRMImm, 0, FlagsNone, 2, 1, 1},      // MOV Ev,Iv
	0xC8: {OpEnter, 0, FlagsNone, 4, 0, 0},         // ENTER
	0xC9: {OpLeave, 0, FlagsNone, 1, 0, 0},         // LEAVE
	0xCA: {OpReturn, 1, FlagsNone, 0, 0, 0},        // RETF Iw
	0xCB: {OpReturn, 1, FlagsNone, 0, 0, 0},        // RETF
	0xCC: {OpInt3, 0, FlagsNone, 0, 0, 0},          // INT3
	0xCD: {OpInt, 255, FlagsNone, 0, 0, 0},         // INT Ib
	0xCE: {OpInto, 48, FlagsNone, 0, 0, 0},         // INTO
	0xCF: {OpReturn, 2, FlagsNone, 0, 0, 0},        // IRET
	0xD0: {OpShiftRotate, 0, FlagsNone, 2, 0, 1},   // grp2 Eb,1
	0xD1: {OpShiftRotate, 0, FlagsNone, 2, 0, 1},   // grp2 Ev,1
	0xD2: {OpShiftRotate, 0, FlagsNone, 2, 0, 1},   // grp2 Eb,CL
	0xD3: {OpShiftRotate, 0, FlagsNone, 2, 0, 1},   // grp2 Ev,CL
	0xD4: {OpAAM, 255, FlagsLogic, 2, 0, 0},        // AAM Ib
	0xD5: {OpAAD, 255, FlagsLogic, 2, 0, 0},        // AAD Ib
	0xD6: {OpSalc, 40, FlagsNone, 1, 0, 0},         // SALC
	0xD7: {OpXlat, 11, FlagsNone, 1, 0, 0},         // XLAT
	0xD8: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xD9: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xDA: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xDB: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xDC: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xDD: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xDE: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xDF: {OpNop, 3, FlagsNone, 2, 0, 1},           // ESC
	0xE0: {OpLoop, 43, FlagsNone, 2, 0, 0},         // LOOPNZ
	0xE1: {OpLoop, 43, FlagsNone, 2, 0, 0},         // LOOPZ
	0xE2: {OpLoop, 43, FlagsNone, 2, 0, 0},         // LOOP
	0xE3: {OpLoop, 43, FlagsNone, 2, 0, 0},         // JCXZ
	0xE4: {OpIn, 0, FlagsNone, 2, 0, 0},            // IN AL,Ib
	0xE5: {OpIn, 0, FlagsNone, 2, 0, 0},            // IN AX,Ib
	0xE6: {OpOut, 0, FlagsNone, 2, 0, 0},           // OUT Ib,AL
	0xE7: {OpOut, 0, FlagsNone, 2, 0, 0},           // OUT Ib,AX
	0xE8: {OpJmpCall, 0, FlagsNone, 0, 0, 0},       // CALL Jv
	0xE9: {OpJmpCall, 0, FlagsNone, 0, 0, 0},       // JMP Jv
	0xEA: {OpJmpCall, 0, FlagsNone, 0, 0, 0},       // JMP Ap
	0xEB: {OpJmpCall, 0, FlagsNone, 0, 0, 0},       // JMP Jb
	0xEC: {OpIn, 1, FlagsNone, 1, 0, 0},            // IN AL,DX
	0xED: {OpIn, 1, FlagsNone, 1, 0, 0},            // IN AX,DX
	0xEE: {OpOut, 1, FlagsNone, 1, 0, 0},           // OUT DX,AL
	0xEF: {OpOut, 1, FlagsNone, 1, 0, 0},           // OUT DX,AX
	0xF0: {OpNop, 1, FlagsNone, 1, 0, 0},           // LOCK
	0xF1: {OpCondJump, 21, FlagsNone, 2, 0, 0},     // (undefined)
	0xF2: {OpRep, 0, FlagsNone, 1, 0, 0},           // REPNE
	0xF3: {OpRep, 0, FlagsNone, 1, 0, 0},           // REP
	0xF4: {OpNop, 2, FlagsNone, 1, 0, 0},           // HLT
	0xF5: {OpCmc, 40, FlagsNone, 1, 0, 0},          // CMC
	0xF6: {OpGroupMulDiv, 21, FlagsNone, 2, 0, 1},  // grp3 Eb
	0xF7: {OpGroupMulDiv, 21, FlagsNone, 2, 0, 1},  // grp3 Ev
	0xF8: {OpFlagSet, 80, FlagsNone, 1, 0, 0},      // CLC
	0xF9: {OpFlagSet, 81, FlagsNone, 1, 0, 0},      // STC
	0xFA: {OpFlagSet, 92, FlagsNone, 1, 0, 0},      // CLI
	0xFB: {OpFlagSet, 93, FlagsNone, 1, 0, 0},      // STI
	0xFC: {OpFlagSet, 94, FlagsNone, 1, 0, 0},      // CLD
	0xFD: {OpFlagSet, 95, FlagsNone, 1, 0, 0},      // STD
	0xFE: {OpGroupIncDec, 0, FlagsNone, 2, 0, 1},   // grp4 Eb
	0xFF: {OpGroupIncDec, 0, FlagsNone, 2, 0, 1},   // grp5 Ev
}

// parityTable is 1 where the byte has an even number of set bits.
var parityTable = [256]uint8{
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0,
	1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1,
}
