package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte being shifted out of
	// (and into) the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register starts a serial transfer and selects
	// the clock source.
	//
	//  Bit 7: Transfer Start Flag (1=Transfer in progress)
	//  Bit 0: Shift Clock         (0=External, 1=Internal)
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. Internally
	// the divider is a 16-bit counter, of which only the upper 8
	// bits may be read. Writing any value resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reloaded with the
	// value of TMA, and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: CPU Clock / 1024 (monitors bit 9)
	//           01: CPU Clock / 16   (monitors bit 3)
	//           10: CPU Clock / 64   (monitors bit 5)
	//           11: CPU Clock / 256  (monitors bit 7)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// NR10 is the first of the audio registers (0xFF10 - 0xFF3F).
	// Audio is not emulated, the range is kept as plain memory.
	NR10 HardwareAddress = 0xFF10
	// NR52 is the last audio control register.
	NR52 HardwareAddress = 0xFF26
	// LCDC is the address of the LCDC hardware register.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: Mode Flag                             (Read Only)
	//           0: During H-Blank
	//           1: During V-Blank
	//           2: During Searching OAM-RAM
	//           3: During Transferring Data to LCD Driver
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll position of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll position of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline (0-153). It is owned by the PPU,
	// writes from the CPU are ignored.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY. When they are equal the
	// coincidence flag in STAT is set.
	LYC HardwareAddress = 0xFF45
	// DMA starts a transfer of 160 bytes from value<<8 into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette.
	//
	//  Bit 7-6 - Shade for Color Number 3
	//  Bit 5-4 - Shade for Color Number 2
	//  Bit 3-2 - Shade for Color Number 1
	//  Bit 1-0 - Shade for Color Number 0
	BGP HardwareAddress = 0xFF47
	// OBP0 is object palette 0.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is object palette 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window, plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM on any non-zero write.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. Writing a 1
	// to a bit in IE enables the corresponding interrupt.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the address bus. The start and end addresses
// are inclusive.
const (
	ROM0Start  = 0x0000
	ROM0End    = 0x3FFF
	ROMXStart  = 0x4000
	ROMXEnd    = 0x7FFF
	VRAMStart  = 0x8000
	VRAMEnd    = 0x9FFF
	ERAMStart  = 0xA000
	ERAMEnd    = 0xBFFF
	WRAMStart  = 0xC000
	WRAMEnd    = 0xDFFF
	EchoStart  = 0xE000
	EchoEnd    = 0xFDFF
	OAMStart   = 0xFE00
	OAMEnd     = 0xFE9F
	UnusedEnd  = 0xFEFF
	IOStart    = 0xFF00
	IOEnd      = 0xFF7F
	HRAMStart  = 0xFF80
	HRAMEnd    = 0xFFFE
	TileData0  = 0x8000 // tile block 0 (0x8000 - 0x87FF)
	TileData1  = 0x8800 // tile block 1 (0x8800 - 0x8FFF)
	TileData2  = 0x9000 // tile block 2 (0x9000 - 0x97FF)
	TileMap0   = 0x9800 // first 32x32 tile map
	TileMap1   = 0x9C00 // second 32x32 tile map
	EchoOffset = EchoStart - WRAMStart
)
