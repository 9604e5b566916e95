package receipt

const textLayout = `{{.Store.Name}}
No. Pesanan: #{{.Order.OrderNumber}}
{{.Store.Address}}

Nama Customer: {{.Order.Customer.Name}}
No. Telp: {{.Order.Customer.Phone}}
Alamat Customer: {{.Order.Customer.Address}}

Tanggal: {{.Date}}
Kasir: {{.Order.Cashier}}
Tipe: {{.Order.OrderType}}
Metode Bayar: {{.Order.PaymentMethod}}

Daftar Item:
{{printf "%-24s %4s %14s %14s" "Item" "Qty" "Harga" "Total"}}
{{range .Order.Products}}{{printf "%-24s %4d %14s %14s" .ProductName .Quantity (rupiah .UnitPrice) (rupiah .Subtotal)}}
{{end}}
Total Produk: {{.Order.TotalItems}}
Total Harga: {{rupiah .Order.TotalPrice}}
Jumlah Bayar: {{rupiah .Order.PaymentAmount}}
Kembalian: {{rupiah (change .Order)}}
STATUS: {{upper (printf "%s" .Order.Status)}}

Terima kasih atas kunjungan Anda
Bila Ada Kritik saran silahkan hubungi kami
{{.Store.Phone}} (WhatsApp)
`

const htmlLayout = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Resi Pesanan #{{.Order.OrderNumber}}</title>
<style>
body { font-family: monospace; font-size: 12px; max-width: 360px; margin: 0 auto; }
h1 { font-size: 18px; text-align: center; margin: 0 0 8px; }
.center { text-align: center; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 2px 0; text-align: left; }
td.num, th.num { text-align: right; }
</style>
</head>
<body>
<h1>{{.Store.Name}}</h1>
<h1>No. Pesanan: #{{.Order.OrderNumber}}</h1>
<p class="center">{{.Store.Address}}</p>
<p>
<b>Nama Customer:</b> {{.Order.Customer.Name}}<br>
<b>No. Telp:</b> {{.Order.Customer.Phone}}<br>
<b>Alamat Customer:</b> {{.Order.Customer.Address}}
</p>
<p>
<b>Tanggal:</b> {{.Date}}<br>
<b>Kasir:</b> {{.Order.Cashier}}<br>
<b>Tipe:</b> {{.Order.OrderType}}<br>
<b>Metode Bayar:</b> {{.Order.PaymentMethod}}
</p>
<p><b>Daftar Item:</b></p>
<table>
<tr><th>Item</th><th class="num">Qty</th><th class="num">Harga</th><th class="num">Total</th></tr>
{{range .Order.Products}}<tr><td>{{.ProductName}}</td><td class="num">{{.Quantity}}</td><td class="num">{{rupiah .UnitPrice}}</td><td class="num">{{rupiah .Subtotal}}</td></tr>
{{end}}</table>
<p>
<b>Total Produk:</b> {{.Order.TotalItems}}<br>
<b>Total Harga:</b> {{rupiah .Order.TotalPrice}}<br>
<b>Jumlah Bayar:</b> {{rupiah .Order.PaymentAmount}}<br>
<b>Kembalian:</b> {{rupiah (change .Order)}}<br>
<b>STATUS:</b> {{upper (printf "%s" .Order.Status)}}
</p>
<p class="center">Terima kasih atas kunjungan Anda<br>
Bila Ada Kritik saran silahkan hubungi kami<br>
{{.Store.Phone}} (WhatsApp)</p>
</body>
</html>
`
