package app

import (
	"github.com/sumihiro3/hands-on-line-pay/internal/domain"
	"github.com/sumihiro3/hands-on-line-pay/internal/linebot"
)

const (
	completionStickerPackageID = "2"
	completionStickerID        = "144"
)

// payNowMessage renders the purchase card: product image, prompt text and
// a button that opens the LINE Pay payment URL.
func payNowMessage(product domain.Product, paymentURL string) linebot.FlexMessage {
	prompt := product.Name + "を購入するには下記のボタンで決済に進んでください"

	bubble := linebot.Bubble{
		Type: "bubble",
		Hero: &linebot.Image{
			Type:        "image",
			URL:         product.ImageURL,
			Size:        "4xl",
			AspectRatio: "1:1",
			AspectMode:  "cover",
		},
		Body: &linebot.Box{
			Type:            "box",
			Layout:          "vertical",
			BackgroundColor: "#f4f4f4",
			Contents: []linebot.FlexComponent{
				linebot.Text{Type: "text", Text: product.Name, Weight: "bold", Size: "xl"},
				linebot.Text{Type: "text", Text: prompt, Wrap: true, Color: "#666666", Size: "sm", Flex: linebot.IntPtr(5)},
			},
		},
		Footer: &linebot.Box{
			Type:    "box",
			Layout:  "vertical",
			Spacing: "sm",
			Flex:    linebot.IntPtr(0),
			Contents: []linebot.FlexComponent{
				linebot.Button{
					Type:   "button",
					Style:  "primary",
					Height: "sm",
					Action: linebot.URIAction{Type: "uri", Label: "LINE Payで決済", URI: paymentURL},
				},
			},
		},
	}

	return linebot.NewFlexMessage(prompt, bubble)
}

// completionMessages is the sticker-plus-thanks pair pushed after the
// payment is captured.
func completionMessages(productName string) []linebot.Message {
	return []linebot.Message{
		linebot.NewStickerMessage(completionStickerPackageID, completionStickerID),
		linebot.NewTextMessage("ありがとうございます！" + productName + "の決済が完了しました。"),
	}
}
