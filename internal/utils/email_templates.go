package utils

import (
	"fmt"

	"lacave_back_end/internal/models"
)

// GenerateVerificationHTML génère le HTML de l'e-mail de vérification
func GenerateVerificationHTML(verifyURL string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Vérification de votre compte</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Bienvenue chez La Cave</h2>
		<p>Bonjour,</p>
		<p>Merci de votre inscription. Cliquez sur le bouton ci-dessous pour vérifier votre adresse e-mail :</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #7b1e3d; color: white; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Vérifier mon compte</a>
		</p>
		<p style="color: #888; font-size: 12px;">Ce lien expire dans 24 heures. Si vous n'êtes pas à l'origine de cette inscription, ignorez cet e-mail.</p>
	</div>
</body>
</html>`, verifyURL)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
			</tr>`, item.Name, item.Quantity, item.UnitPrice, item.UnitPrice*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<table style="width: 100%%; margin: 10px 0;">
			<tr><td>Sous-total</td><td style="text-align: right;">%.2f</td></tr>
			<tr><td>Livraison</td><td style="text-align: right;">%.2f</td></tr>
			<tr><td><strong>Total</strong></td><td style="text-align: right;"><strong>%.2f</strong></td></tr>
		</table>

		<p>Livraison à : %s, %s, %s</p>
		<p style="color: #888; font-size: 12px;">L'abus d'alcool est dangereux pour la santé. À consommer avec modération.</p>
	</div>
</body>
</html>`, order.OrderNumber, itemsHTML, order.Subtotal, order.DeliveryFee, order.Total,
		order.DeliveryAddress.FullName, order.DeliveryAddress.Street, order.DeliveryAddress.City)
}
