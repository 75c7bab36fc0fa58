package mail

import "html/template"

const placeholderImage = "https://via.placeholder.com/80"

var templateFuncs = template.FuncMap{
	"subtotal": func(price float64, qty int) float64 { return price * float64(qty) },
	"imageOrPlaceholder": func(url string) string {
		if url == "" {
			return placeholderImage
		}
		return url
	},
}

var orderReceivedTmpl = template.Must(template.New("orderReceived").Funcs(templateFuncs).Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
  <h2 style="margin-bottom: 10px;">New Order Received</h2>

  <p><strong>Name:</strong> {{.Customer.Name}}</p>
  <p><strong>Email:</strong> {{.Customer.Email}}</p>
  <p><strong>Phone:</strong> {{.Customer.Phone}}</p>
  <p><strong>Address:</strong> {{.Customer.Address}}</p>
  <p><strong>Notes:</strong> {{if .Customer.Notes}}{{.Customer.Notes}}{{else}}None{{end}}</p>

  <h3 style="margin-top: 25px;">Items</h3>

  <table style="width: 100%; border-collapse: collapse; margin-top: 10px;">
    <tbody>
      {{range .Items}}
      <tr>
        <td style="padding: 8px; vertical-align: top;">
          <img src="{{imageOrPlaceholder .Image}}" alt="{{.Name}}"
               style="width: 80px; height: 80px; object-fit: cover; border-radius: 6px;" />
        </td>
        <td style="padding: 8px; vertical-align: top;">
          <strong>{{.Name}}</strong><br/>
          Price: ${{printf "%.2f" .Price}}<br/>
          Quantity: {{.Quantity}}
        </td>
        <td style="padding: 8px; text-align: right; vertical-align: top;">
          ${{printf "%.2f" (subtotal .Price .Quantity)}}
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <h3 style="margin-top: 20px;">Total: ${{printf "%.2f" .Total}}</h3>
</div>
`))

var orderConfirmationTmpl = template.Must(template.New("orderConfirmation").Funcs(templateFuncs).Parse(`
<div style="font-family: Arial, sans-serif; padding: 24px; background: #f7f5f2; color: #333;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; padding: 24px; border-radius: 8px;">
    <h2 style="text-align: center; margin-bottom: 10px; color: #4a3f35;">
      Thank you for your order, {{.Customer.Name}}!
    </h2>
    <p style="text-align: center; margin-top: 0; color: #6b5e54;">
      We&rsquo;re excited to start crafting your piece.
    </p>

    <hr style="border: none; border-top: 1px solid #e0dcd7; margin: 20px 0;" />

    <h3 style="color: #4a3f35; margin-bottom: 12px;">Order Summary</h3>

    <table style="width: 100%; border-collapse: collapse;">
      <tbody>
        {{range .Items}}
        <tr>
          <td style="padding: 10px; vertical-align: top;">
            <img src="{{imageOrPlaceholder .Image}}" alt="{{.Name}}"
                 style="width: 80px; height: 80px; object-fit: cover; border-radius: 6px;" />
          </td>
          <td style="padding: 10px; vertical-align: top;">
            <strong style="font-size: 15px;">{{.Name}}</strong><br/>
            <span style="color: #6b5e54;">Price:</span> ${{printf "%.2f" .Price}}<br/>
            <span style="color: #6b5e54;">Quantity:</span> {{.Quantity}}
          </td>
          <td style="padding: 10px; text-align: right; vertical-align: top;">
            ${{printf "%.2f" (subtotal .Price .Quantity)}}
          </td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <h3 style="text-align: right; margin-top: 20px; color: #4a3f35;">
      Total: ${{printf "%.2f" .Total}}
    </h3>

    <hr style="border: none; border-top: 1px solid #e0dcd7; margin: 20px 0;" />

    <p style="font-size: 14px; color: #6b5e54;">
      We&rsquo;ll reach out soon with updates about your order.
      If you have any questions, simply reply to this email.
    </p>
  </div>
</div>
`))

var contactMessageTmpl = template.Must(template.New("contactMessage").Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))
