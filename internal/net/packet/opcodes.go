package packet

// Client request commands (major, minor joined big-endian, misc.getcmd style).
var (
	C_Handshake = MakeCmd(0xF8, 0x2A)
	C_CharInfo  = MakeCmd(0xF9, 0x2A)
	C_Chat      = MakeCmd(0x1A, 0x27)
	C_KeepAlive = MakeCmd(0x74, 0x2B)
	C_Roster    = MakeCmd(0xF2, 0x2A)
	C_Create    = MakeCmd(0xE2, 0x2A)

	C_EquipPart   = MakeCmd(0xE4, 0x2A)
	C_EquipGear   = MakeCmd(0x19, 0x2A)
	C_EquipPack   = MakeCmd(0x1B, 0x2A)
	C_DeequipPart = MakeCmd(0xE5, 0x2A)
	C_DeequipGear = MakeCmd(0x1A, 0x2A)
	C_DeequipPack = MakeCmd(0x1C, 0x2A)

	C_ShopBuy     = MakeCmd(0xEA, 0x2A)
	C_ShopSell    = MakeCmd(0xEB, 0x2A)
	C_ShopBuyCoin = MakeCmd(0xEC, 0x2A)

	C_RoomCreate = MakeCmd(0x39, 0x2A)
	C_RoomLeave  = MakeCmd(0x3A, 0x2A)
	C_RoomJoin   = MakeCmd(0x3B, 0x2A)
)

// Server response opcode pairs.
const (
	S_HandshakeMaj, S_HandshakeMin byte = 0xE0, 0x2E
	S_CharInfoMaj, S_CharInfoMin   byte = 0xE1, 0x2E
	S_CreateMaj, S_CreateMin       byte = 0xE2, 0x2E
	S_RosterMaj, S_RosterMin       byte = 0xF2, 0x2E
	S_NoticeMaj, S_NoticeMin       byte = 0x27, 0x27
	S_ChatMaj, S_ChatMin           byte = 0x1A, 0x27
	S_AckMaj, S_AckMin             byte = 0x46, 0x2F
	S_RoomQuitMaj, S_RoomQuitMin   byte = 0x3A, 0x2F
	S_RoomMaj, S_RoomMin           byte = 0x39, 0x2F
)
