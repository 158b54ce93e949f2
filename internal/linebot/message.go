package linebot

// Message is any payload accepted by the Messaging API reply/push
// endpoints. Concrete types carry their own "type" discriminator.
type Message interface {
	message()
}

type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

func (TextMessage) message() {}

type StickerMessage struct {
	Type      string `json:"type"`
	PackageID string `json:"packageId"`
	StickerID string `json:"stickerId"`
}

func NewStickerMessage(packageID, stickerID string) StickerMessage {
	return StickerMessage{Type: "sticker", PackageID: packageID, StickerID: stickerID}
}

func (StickerMessage) message() {}

// FlexMessage wraps a bubble container. Only the pieces the bot renders
// are modeled; the Messaging API ignores absent optional fields.
type FlexMessage struct {
	Type     string `json:"type"`
	AltText  string `json:"altText"`
	Contents Bubble `json:"contents"`
}

func NewFlexMessage(altText string, contents Bubble) FlexMessage {
	return FlexMessage{Type: "flex", AltText: altText, Contents: contents}
}

func (FlexMessage) message() {}

type Bubble struct {
	Type   string `json:"type"`
	Hero   *Image `json:"hero,omitempty"`
	Body   *Box   `json:"body,omitempty"`
	Footer *Box   `json:"footer,omitempty"`
}

type Image struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Size        string `json:"size,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	AspectMode  string `json:"aspectMode,omitempty"`
}

type Box struct {
	Type            string          `json:"type"`
	Layout          string          `json:"layout"`
	Spacing         string          `json:"spacing,omitempty"`
	Margin          string          `json:"margin,omitempty"`
	BackgroundColor string          `json:"backgroundColor,omitempty"`
	Flex            *int            `json:"flex,omitempty"`
	Contents        []FlexComponent `json:"contents"`
}

func (Box) component() {}

type Text struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Wrap   bool   `json:"wrap,omitempty"`
	Weight string `json:"weight,omitempty"`
	Size   string `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Flex   *int   `json:"flex,omitempty"`
}

func (Text) component() {}

type Button struct {
	Type   string    `json:"type"`
	Style  string    `json:"style,omitempty"`
	Height string    `json:"height,omitempty"`
	Action URIAction `json:"action"`
}

func (Button) component() {}

type URIAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	URI   string `json:"uri"`
}

// FlexComponent is a block inside a box: Box, Text or Button.
type FlexComponent interface {
	component()
}

// IntPtr is a convenience for the optional numeric flex fields.
func IntPtr(v int) *int {
	return &v
}
