package cartridge

import "fmt"

// Kind identifies the cartridge hardware from the header byte at 0x147. It is
// mostly useful to pick a memory bank controller. The bus implements no
// banking and stubs cartridge RAM (0xA000-0xBFFF reads 0, writes are dropped),
// so only RomOnly is fully supported; the RomRam variants run without RAM.
type Kind uint8

const (
	RomOnly                    Kind = 0x00
	Mbc1                       Kind = 0x01
	Mbc1Ram                    Kind = 0x02
	Mbc1RamBattery             Kind = 0x03
	Mbc2                       Kind = 0x05
	Mbc2Battery                Kind = 0x06
	RomRam                     Kind = 0x08
	RomRamBattery              Kind = 0x09
	Mmm01                      Kind = 0x0B
	Mmm01Ram                   Kind = 0x0C
	Mmm01RamBattery            Kind = 0x0D
	Mbc3TimerBattery           Kind = 0x0F
	Mbc3TimerRamBattery        Kind = 0x10
	Mbc3                       Kind = 0x11
	Mbc3Ram                    Kind = 0x12
	Mbc3RamBattery             Kind = 0x13
	Mbc5                       Kind = 0x19
	Mbc5Ram                    Kind = 0x1A
	Mbc5RamBattery             Kind = 0x1B
	Mbc5Rumble                 Kind = 0x1C
	Mbc5RumbleRam              Kind = 0x1D
	Mbc5RumbleRamBattery       Kind = 0x1E
	Mbc6                       Kind = 0x20
	Mbc7SensorRumbleRamBattery Kind = 0x22
	PocketCamera               Kind = 0xFC
	BandaiTama5                Kind = 0xFD
	Huc3                       Kind = 0xFE
	Huc1RamBattery             Kind = 0xFF
)

var kindNames = map[Kind]string{
	RomOnly:                    "ROM ONLY",
	Mbc1:                       "MBC1",
	Mbc1Ram:                    "MBC1+RAM",
	Mbc1RamBattery:             "MBC1+RAM+BATTERY",
	Mbc2:                       "MBC2",
	Mbc2Battery:                "MBC2+BATTERY",
	RomRam:                     "ROM+RAM",
	RomRamBattery:              "ROM+RAM+BATTERY",
	Mmm01:                      "MMM01",
	Mmm01Ram:                   "MMM01+RAM",
	Mmm01RamBattery:            "MMM01+RAM+BATTERY",
	Mbc3TimerBattery:           "MBC3+TIMER+BATTERY",
	Mbc3TimerRamBattery:        "MBC3+TIMER+RAM+BATTERY",
	Mbc3:                       "MBC3",
	Mbc3Ram:                    "MBC3+RAM",
	Mbc3RamBattery:             "MBC3+RAM+BATTERY",
	Mbc5:                       "MBC5",
	Mbc5Ram:                    "MBC5+RAM",
	Mbc5RamBattery:             "MBC5+RAM+BATTERY",
	Mbc5Rumble:                 "MBC5+RUMBLE",
	Mbc5RumbleRam:              "MBC5+RUMBLE+RAM",
	Mbc5RumbleRamBattery:       "MBC5+RUMBLE+RAM+BATTERY",
	Mbc6:                       "MBC6",
	Mbc7SensorRumbleRamBattery: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	PocketCamera:               "POCKET CAMERA",
	BandaiTama5:                "BANDAI TAMA5",
	Huc3:                       "HuC3",
	Huc1RamBattery:             "HuC1+RAM+BATTERY",
}

// KindFromByte decodes the header byte at 0x147 into a Kind.
func KindFromByte(value uint8) (Kind, error) {
	kind := Kind(value)
	if _, ok := kindNames[kind]; !ok {
		return 0, &InvalidCartridgeKindError{Value: value}
	}
	return kind, nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%#04x)", uint8(k))
}
