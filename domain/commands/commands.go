package commands

type Command interface {
	Name() string
}

type JoinRoom struct {
	RoomID     string `mapstructure:"roomId"`
	PlayerName string `mapstructure:"playerName"`
}

func (c JoinRoom) Name() string { return "joinRoom" }

type LeaveRoom struct{}

func (c LeaveRoom) Name() string { return "leaveRoom" }

type PlayerAction struct {
	Action string `mapstructure:"action"`
	Amount int    `mapstructure:"amount"`
}

func (c PlayerAction) Name() string { return "playerAction" }

type Rebuy struct {
	BuyChips   bool `mapstructure:"buyChips"`
	ChipAmount int  `mapstructure:"chipAmount"`
}

func (c Rebuy) Name() string { return "rebuy" }

type UpdateSettings struct {
	Settings map[string]any `mapstructure:"settings"`
}

func (c UpdateSettings) Name() string { return "updateSettings" }

type GetSettings struct{}

func (c GetSettings) Name() string { return "getSettings" }

type RequestRebuy struct{}

func (c RequestRebuy) Name() string { return "requestRebuy" }
